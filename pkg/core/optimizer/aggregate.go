package optimizer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// aggregate builds the result of a finished run. Notices are emitted in a fixed order
// so identical runs produce identical results.
func (o *Optimizer) aggregate(state *RunState) *Result {
	result := &Result{
		Assignments:      append([]Assignment{}, state.assignments...),
		LocationCoverage: make([]LocationCoverage, 0, len(state.slots)),
		Recommendations:  []Notice{},
		Warnings:         []Notice{},
	}
	alerts := o.options.Alerts

	percentages := make([]float64, 0, len(state.slots))
	for _, slot := range state.slots {
		coverage := slotCoverage(slot)
		result.LocationCoverage = append(result.LocationCoverage, coverage)
		percentages = append(percentages, coverage.CoveragePercentage)

		if coverage.CoveragePercentage < alerts.MinCoveragePercent {
			result.Warnings = append(result.Warnings, Notice{
				Code:       NoticeLowCoverage,
				LocationID: coverage.LocationID,
				Date:       coverage.Date,
				Value:      coverage.CoveragePercentage,
				Threshold:  alerts.MinCoveragePercent,
			})
		}
		if slot.requirement.Priority == model.PriorityCritical && coverage.Gaps.Shortfall > 0 {
			result.Recommendations = append(result.Recommendations, Notice{
				Code:       NoticeCriticalGapUnfilled,
				LocationID: coverage.LocationID,
				Date:       coverage.Date,
				Value:      float64(coverage.Gaps.Shortfall),
			})
		}
	}

	result.TravelCosts = summarizeTravelCosts(state.assignments)
	result.Efficiency = efficiencyMetrics(state.assignments, percentages)

	if result.TravelCosts.TotalCost > alerts.TotalTravelCost {
		result.Recommendations = append(result.Recommendations, Notice{
			Code:      NoticeTravelCostOverBudget,
			Value:     result.TravelCosts.TotalCost,
			Threshold: alerts.TotalTravelCost,
		})
	}
	if result.TravelCosts.TravelAssignments > 0 && result.Efficiency.TravelEfficiency < alerts.MinTravelEfficiency {
		result.Recommendations = append(result.Recommendations, Notice{
			Code:      NoticeLowTravelEfficiency,
			Value:     result.Efficiency.TravelEfficiency,
			Threshold: alerts.MinTravelEfficiency,
		})
	}

	for _, staffID := range state.staffOrder {
		cost, ok := result.TravelCosts.ByStaff[staffID]
		if ok && cost > alerts.StaffTravelCost {
			result.Warnings = append(result.Warnings, Notice{
				Code:          NoticeStaffTravelCostHigh,
				StaffMemberID: staffID,
				Value:         cost,
				Threshold:     alerts.StaffTravelCost,
			})
		}
	}

	result.Warnings = append(result.Warnings, minimumStaffingWarnings(state)...)

	return result
}

func slotCoverage(slot *requirementSlot) LocationCoverage {
	required := slot.requirement.RequiredCount
	percentage := 100.0
	if required > 0 {
		percentage = math.Min(100, float64(slot.assigned)/float64(required)*100)
	}

	gaps := CoverageGaps{Shortfall: slot.shortfall(), CriticalGaps: []CriticalGap{}}
	priority := slot.requirement.Priority
	if gaps.Shortfall > 0 && (priority == model.PriorityHigh || priority == model.PriorityCritical) {
		gaps.CriticalGaps = append(gaps.CriticalGaps, CriticalGap{
			RequirementID: slot.requirement.ID,
			Role:          slot.requirement.RequiredRole,
			Missing:       gaps.Shortfall,
			Priority:      priority,
		})
	}

	return LocationCoverage{
		LocationID:         slot.requirement.LocationID,
		RequirementID:      slot.requirement.ID,
		Date:               slot.requirement.Date,
		StartTime:          slot.requirement.StartTime,
		EndTime:            slot.requirement.EndTime,
		Role:               slot.requirement.RequiredRole,
		RequiredStaff:      required,
		AssignedStaff:      slot.assigned,
		CoveragePercentage: percentage,
		Gaps:               gaps,
	}
}

// summarizeTravelCosts totals travel assignments only
func summarizeTravelCosts(assignments []Assignment) TravelCostSummary {
	summary := TravelCostSummary{
		ByLocation: map[string]float64{},
		ByStaff:    map[string]float64{},
	}

	var costs []float64
	for _, a := range assignments {
		if !a.TravelRequired {
			continue
		}
		costs = append(costs, a.TravelCost)
		summary.ByLocation[a.AssignedLocationID] += a.TravelCost
		summary.ByStaff[a.StaffMemberID] += a.TravelCost
		summary.TotalTravelMinutes += a.TravelTimeMinutes
		summary.TravelAssignments++
	}
	summary.TotalCost = floats.Sum(costs)

	return summary
}

func efficiencyMetrics(assignments []Assignment, coveragePercentages []float64) EfficiencyMetrics {
	var efficiency, travelEfficiency, confidence []float64
	for _, a := range assignments {
		efficiency = append(efficiency, a.EfficiencyScore)
		confidence = append(confidence, a.Confidence)
		if a.TravelRequired {
			travelEfficiency = append(travelEfficiency, a.EfficiencyScore)
		}
	}

	metrics := EfficiencyMetrics{
		TravelEfficiency:     1,
		CoverageOptimization: 1,
	}
	if len(efficiency) > 0 {
		metrics.Utilization = clamp01(stat.Mean(efficiency, nil))
		metrics.StaffSatisfaction = clamp01(stat.Mean(confidence, nil))
	}
	if len(travelEfficiency) > 0 {
		metrics.TravelEfficiency = clamp01(stat.Mean(travelEfficiency, nil))
	}
	if len(coveragePercentages) > 0 {
		metrics.CoverageOptimization = clamp01(stat.Mean(coveragePercentages, nil) / 100)
	}

	return metrics
}

// minimumStaffingWarnings compares the staff assigned to each location on each date that
// has requirements against the configured minimum for that location
func minimumStaffingWarnings(state *RunState) []Notice {
	type locationDate struct {
		location string
		date     string
	}

	demanded := map[locationDate]bool{}
	for _, slot := range state.slots {
		demanded[locationDate{slot.requirement.LocationID, slot.requirement.Date}] = true
	}

	assigned := map[locationDate]map[string]bool{}
	for _, a := range state.assignments {
		key := locationDate{a.AssignedLocationID, a.Date}
		if assigned[key] == nil {
			assigned[key] = map[string]bool{}
		}
		assigned[key][a.StaffMemberID] = true
	}

	keys := make([]locationDate, 0, len(demanded))
	for key := range demanded {
		keys = append(keys, key)
	}
	rank := map[string]int{}
	for i, id := range state.registry.locationOrder {
		rank[id] = i
	}
	sort.Slice(keys, func(i, j int) bool {
		if rank[keys[i].location] != rank[keys[j].location] {
			return rank[keys[i].location] < rank[keys[j].location]
		}
		if keys[i].location != keys[j].location {
			return keys[i].location < keys[j].location
		}
		return keys[i].date < keys[j].date
	})

	var warnings []Notice
	for _, key := range keys {
		minimum, ok := state.Constraints.MinimumStaffing[key.location]
		if !ok || minimum <= 0 {
			continue
		}
		count := len(assigned[key])
		if count < minimum {
			warnings = append(warnings, Notice{
				Code:       NoticeBelowMinimumStaffing,
				LocationID: key.location,
				Date:       key.date,
				Value:      float64(count),
				Threshold:  float64(minimum),
			})
		}
	}

	return warnings
}
