package optimizer

// CompensationCriterion rejects staff who require travel compensation when the run's
// policy does not pay for travel.
type CompensationCriterion struct{}

func NewCompensationCriterion() *CompensationCriterion {
	return &CompensationCriterion{}
}

func (c *CompensationCriterion) Name() string {
	return "TravelCompensation"
}

func (c *CompensationCriterion) IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool {
	if state.Constraints.Policies.CompensateTravel {
		return true
	}
	return !candidate.Staff.Preferences.CompensationRequired
}

func (c *CompensationCriterion) ValidateRunState(state *RunState) []ValidationError {
	if state.Constraints.Policies.CompensateTravel {
		return nil
	}

	var errors []ValidationError
	for _, a := range state.assignments {
		if !a.TravelRequired {
			continue
		}
		if candidate, ok := state.staff[a.StaffMemberID]; ok && candidate.Preferences.CompensationRequired {
			errors = append(errors, ValidationError{
				StaffMemberID: a.StaffMemberID,
				Date:          a.Date,
				CriterionName: c.Name(),
				Description:   "travel assignment for staff requiring compensation while travel is uncompensated",
			})
		}
	}
	return errors
}
