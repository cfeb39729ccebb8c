package optimizer

import (
	"fmt"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// Scores recorded for assignments made by the local pass
const (
	LocalConfidence   = 0.95
	LocalConflictRisk = 0.10
	LocalEfficiency   = 0.90
)

// Assignment places a staff member on a coverage requirement
type Assignment struct {
	StaffMemberID      string
	PrimaryLocationID  string
	AssignedLocationID string
	RequirementID      string
	Date               string
	StartTime          string
	EndTime            string
	Role               string
	TravelRequired     bool
	TravelTimeMinutes  int
	TravelCost         float64
	Confidence         float64
	ConflictRisk       float64
	EfficiencyScore    float64
}

// Gap is the unmet part of a coverage requirement after the local pass
type Gap struct {
	Requirement model.CoverageRequirement
	Window      model.Window

	// Shortfall is the number of staff still missing
	Shortfall int

	// Priority is the numeric priority derived from the requirement's label
	Priority int

	// Sequence is the requirement's position in coverage order (used as the tie-break)
	Sequence int
}

// CriticalGap describes an unfilled high or critical priority requirement
type CriticalGap struct {
	RequirementID string
	Role          string
	Missing       int
	Priority      model.Priority
}

// CoverageGaps holds the remaining shortfall for one coverage slot
type CoverageGaps struct {
	Shortfall    int
	CriticalGaps []CriticalGap
}

// LocationCoverage reports how well a single requirement slot was covered
type LocationCoverage struct {
	LocationID         string
	RequirementID      string
	Date               string
	StartTime          string
	EndTime            string
	Role               string
	RequiredStaff      int
	AssignedStaff      int
	CoveragePercentage float64
	Gaps               CoverageGaps
}

// TravelCostSummary totals cost over travel assignments only
type TravelCostSummary struct {
	TotalCost          float64
	ByLocation         map[string]float64
	ByStaff            map[string]float64
	TotalTravelMinutes int
	TravelAssignments  int
}

// EfficiencyMetrics are run-level quality measures, each in [0,1]
type EfficiencyMetrics struct {
	Utilization          float64
	TravelEfficiency     float64
	CoverageOptimization float64
	StaffSatisfaction    float64
}

// NoticeCode identifies a threshold-triggered finding
type NoticeCode string

const (
	NoticeTravelCostOverBudget NoticeCode = "travel_cost_over_budget"
	NoticeLowCoverage          NoticeCode = "low_coverage"
	NoticeStaffTravelCostHigh  NoticeCode = "staff_travel_cost_high"
	NoticeBelowMinimumStaffing NoticeCode = "below_minimum_staffing"
	NoticeCriticalGapUnfilled  NoticeCode = "critical_gap_unfilled"
	NoticeLowTravelEfficiency  NoticeCode = "low_travel_efficiency"
)

// Notice is a language-neutral recommendation or warning. Value is the observed
// measure and Threshold the limit it was compared against.
type Notice struct {
	Code          NoticeCode
	LocationID    string
	StaffMemberID string
	Date          string
	Value         float64
	Threshold     float64
}

func (n Notice) String() string {
	switch n.Code {
	case NoticeTravelCostOverBudget:
		return fmt.Sprintf("total travel cost %.2f exceeds alert threshold %.2f", n.Value, n.Threshold)
	case NoticeLowCoverage:
		return fmt.Sprintf("coverage at %s on %s is %.0f%% (below %.0f%%)", n.LocationID, n.Date, n.Value, n.Threshold)
	case NoticeStaffTravelCostHigh:
		return fmt.Sprintf("travel cost for %s is %.2f (above %.2f)", n.StaffMemberID, n.Value, n.Threshold)
	case NoticeBelowMinimumStaffing:
		return fmt.Sprintf("%s on %s has %.0f staff assigned (minimum %.0f)", n.LocationID, n.Date, n.Value, n.Threshold)
	case NoticeCriticalGapUnfilled:
		return fmt.Sprintf("critical requirement at %s on %s still missing %.0f staff", n.LocationID, n.Date, n.Value)
	case NoticeLowTravelEfficiency:
		return fmt.Sprintf("travel efficiency %.2f is below %.2f", n.Value, n.Threshold)
	default:
		return string(n.Code)
	}
}

// ValidationError is a constraint violation found in a finished run
type ValidationError struct {
	StaffMemberID string
	Date          string
	CriterionName string
	Description   string
}

// Result is the outcome of one optimization call. It is owned by the caller.
type Result struct {
	Assignments      []Assignment
	LocationCoverage []LocationCoverage
	TravelCosts      TravelCostSummary
	Efficiency       EfficiencyMetrics
	Recommendations  []Notice
	Warnings         []Notice
	ValidationErrors []ValidationError
}

// CoverageRatio is the share of required staff positions that were filled, counting
// over-assignment as full. A run with no required positions is fully covered.
func (r *Result) CoverageRatio() float64 {
	required, filled := 0, 0
	for _, c := range r.LocationCoverage {
		required += c.RequiredStaff
		filled += min(c.AssignedStaff, c.RequiredStaff)
	}
	if required == 0 {
		return 1
	}
	return float64(filled) / float64(required)
}

// Policies toggles optional rules
type Policies struct {
	// AllowOvertime disables the weekly extra-work hours limit
	AllowOvertime bool

	// CompensateTravel allows assigning staff whose preferences require travel compensation
	CompensateTravel bool
}

// Constraints bound a single optimization run
type Constraints struct {
	MaxTravelTimePerDay         int
	MaxCrossLocationAssignments int
	MileageRate                 float64
	HourlyTravelRate            float64
	MinimumStaffing             map[string]int
	MaxOvertimeHours            float64
	Policies                    Policies
}

// DefaultConstraints returns the constraints used when none are configured
func DefaultConstraints() Constraints {
	return Constraints{
		MaxTravelTimePerDay:         120,
		MaxCrossLocationAssignments: 3,
		MileageRate:                 0.655,
		HourlyTravelRate:            25,
		MinimumStaffing:             map[string]int{},
		MaxOvertimeHours:            0,
		Policies: Policies{
			AllowOvertime:    true,
			CompensateTravel: true,
		},
	}
}

// ScoringParams are the heuristic coefficients of the cross-location scoring engine
type ScoringParams struct {
	BaseConfidence           float64
	PreferredBonus           float64
	MaxConfidence            float64
	TravelTimeWindow         float64 // minutes over which confidence decays
	MinTravelFactor          float64
	BaseEfficiency           float64
	SpeedWeight              float64
	SpeedCapMPH              float64
	CostWeight               float64
	CostNormalization        float64
	PreferredEfficiencyBonus float64
}

// DefaultScoringParams returns the standard scoring coefficients
func DefaultScoringParams() ScoringParams {
	return ScoringParams{
		BaseConfidence:           0.7,
		PreferredBonus:           0.2,
		MaxConfidence:            0.95,
		TravelTimeWindow:         120,
		MinTravelFactor:          0.5,
		BaseEfficiency:           0.5,
		SpeedWeight:              0.2,
		SpeedCapMPH:              60,
		CostWeight:               0.2,
		CostNormalization:        100,
		PreferredEfficiencyBonus: 0.1,
	}
}

// AlertThresholds trigger recommendations and warnings
type AlertThresholds struct {
	TotalTravelCost     float64
	StaffTravelCost     float64
	MinCoveragePercent  float64
	MinTravelEfficiency float64
}

func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		TotalTravelCost:     200,
		StaffTravelCost:     100,
		MinCoveragePercent:  80,
		MinTravelEfficiency: 0.6,
	}
}

// PreferenceDefaults are applied to staff without a preference record or with unset fields
type PreferenceDefaults struct {
	MaxTravelTimeMinutes   int
	MaxTravelDistanceMiles float64
}

func DefaultPreferenceDefaults() PreferenceDefaults {
	return PreferenceDefaults{
		MaxTravelTimeMinutes:   60,
		MaxTravelDistanceMiles: 100,
	}
}

// Options configure an Optimizer
type Options struct {
	Scoring            ScoringParams
	Alerts             AlertThresholds
	PreferenceDefaults PreferenceDefaults

	// MaxParallelFetches bounds concurrent reads against the coverage source
	MaxParallelFetches int

	// ExtraCriteria are applied after the built-in criteria when vetting travel candidates
	ExtraCriteria []Criterion
}

func DefaultOptions() Options {
	return Options{
		Scoring:            DefaultScoringParams(),
		Alerts:             DefaultAlertThresholds(),
		PreferenceDefaults: DefaultPreferenceDefaults(),
		MaxParallelFetches: 8,
	}
}

// withDefaults fills zero-valued option groups from the defaults. Scoring divisors
// and preference limits must be positive, so non-positive values fall back too.
func (o Options) withDefaults() Options {
	if o.Scoring == (ScoringParams{}) {
		o.Scoring = DefaultScoringParams()
	}
	scoring := DefaultScoringParams()
	if o.Scoring.TravelTimeWindow <= 0 {
		o.Scoring.TravelTimeWindow = scoring.TravelTimeWindow
	}
	if o.Scoring.SpeedCapMPH <= 0 {
		o.Scoring.SpeedCapMPH = scoring.SpeedCapMPH
	}
	if o.Scoring.CostNormalization <= 0 {
		o.Scoring.CostNormalization = scoring.CostNormalization
	}

	if o.Alerts == (AlertThresholds{}) {
		o.Alerts = DefaultAlertThresholds()
	}

	prefs := DefaultPreferenceDefaults()
	if o.PreferenceDefaults.MaxTravelTimeMinutes <= 0 {
		o.PreferenceDefaults.MaxTravelTimeMinutes = prefs.MaxTravelTimeMinutes
	}
	if o.PreferenceDefaults.MaxTravelDistanceMiles <= 0 {
		o.PreferenceDefaults.MaxTravelDistanceMiles = prefs.MaxTravelDistanceMiles
	}

	if o.MaxParallelFetches <= 0 {
		o.MaxParallelFetches = DefaultOptions().MaxParallelFetches
	}
	return o
}
