package optimizer

import "github.com/acganger/ganger-platform-sub011/pkg/core/model"

// Candidate is a staff member being considered for a gap via a specific route
type Candidate struct {
	Staff *StaffCandidate
	Route model.TravelRoute
}

// Criterion defines a hard rule for cross-location assignment
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsCandidateValid returns false if assigning the candidate to the gap would break the rule.
	// This acts as a veto: if ANY criterion returns false, the candidate is rejected.
	IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool

	// ValidateRunState checks the finished run against the rule and returns any violations
	ValidateRunState(state *RunState) []ValidationError
}

// DefaultCriteria returns the built-in rules, in evaluation order
func DefaultCriteria() []Criterion {
	return []Criterion{
		NewQualificationCriterion(),
		NewNoOverlapCriterion(),
		NewWeeklyLimitCriterion(),
		NewDailyTravelCriterion(),
		NewCompensationCriterion(),
		NewOvertimeCriterion(),
	}
}

// IsCandidateValid runs every criterion against the candidate
func IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate, criteria []Criterion) bool {
	for _, criterion := range criteria {
		if !criterion.IsCandidateValid(state, gap, candidate) {
			return false
		}
	}
	return true
}

// ValidateRunState validates the finished run against all provided criteria.
// An empty slice indicates the run is valid.
func ValidateRunState(state *RunState, criteria []Criterion) []ValidationError {
	errors := []ValidationError{}
	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateRunState(state)...)
	}
	return errors
}
