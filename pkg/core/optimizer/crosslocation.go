package optimizer

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

type scoredCandidate struct {
	candidate Candidate
	score     CandidateScore
}

// resolveGaps fills gaps, in the given order, with travelling staff. Candidates that
// pass every criterion are ranked by efficiency and the best are assigned up to the
// shortfall. Per-staff totals are read from the state, so gaps are processed strictly
// one after another. The context is checked before each gap.
func (o *Optimizer) resolveGaps(ctx context.Context, state *RunState, gaps []Gap) error {
	slots := make(map[int]*requirementSlot, len(state.slots))
	for _, slot := range state.slots {
		slots[slot.sequence] = slot
	}

	for i := range gaps {
		if err := ctx.Err(); err != nil {
			return err
		}

		gap := &gaps[i]
		slot := slots[gap.Sequence]
		candidates := o.evaluateCandidates(state, gap)

		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].score.Efficiency > candidates[b].score.Efficiency
		})

		filled := 0
		for _, sc := range candidates {
			if filled == gap.Shortfall {
				break
			}
			staff := sc.candidate.Staff
			state.addAssignment(slot, Assignment{
				StaffMemberID:      staff.Member.ID,
				PrimaryLocationID:  staff.PrimaryLocationID,
				AssignedLocationID: gap.Requirement.LocationID,
				RequirementID:      gap.Requirement.ID,
				Date:               gap.Requirement.Date,
				StartTime:          gap.Requirement.StartTime,
				EndTime:            gap.Requirement.EndTime,
				Role:               gap.Requirement.RequiredRole,
				TravelRequired:     true,
				TravelTimeMinutes:  sc.candidate.Route.TravelTimeMinutes,
				TravelCost:         sc.score.TravelCost,
				Confidence:         sc.score.Confidence,
				ConflictRisk:       sc.score.ConflictRisk,
				EfficiencyScore:    sc.score.Efficiency,
			})
			filled++
		}

		o.logger.Debug("Resolved gap",
			zap.String("requirement_id", gap.Requirement.ID),
			zap.String("location_id", gap.Requirement.LocationID),
			zap.String("date", gap.Requirement.Date),
			zap.Int("priority", gap.Priority),
			zap.Int("shortfall", gap.Shortfall),
			zap.Int("candidates", len(candidates)),
			zap.Int("filled", filled))
	}

	return nil
}

// evaluateCandidates returns every staff member with a viable route to the gap's
// location who passes all criteria, in staff order, with their scores
func (o *Optimizer) evaluateCandidates(state *RunState, gap *Gap) []scoredCandidate {
	var candidates []scoredCandidate

	for _, staffID := range state.staffOrder {
		staff := state.staff[staffID]
		if staff.PrimaryLocationID == gap.Requirement.LocationID {
			continue
		}

		route, ok := staff.RouteTo(gap.Requirement.LocationID)
		if !ok {
			continue
		}

		candidate := Candidate{Staff: staff, Route: route}
		if !IsCandidateValid(state, gap, &candidate, o.criteria) {
			continue
		}

		preferred := staff.Preferences.IsPreferred(gap.Requirement.LocationID)
		candidates = append(candidates, scoredCandidate{
			candidate: candidate,
			score:     scoreCandidate(route, preferred, state.Constraints, o.options.Scoring),
		})
	}

	return candidates
}
