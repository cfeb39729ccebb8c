package optimizer

// OvertimeCriterion limits the extra-work hours a staff member accumulates in one ISO
// week when overtime is not allowed. A non-positive MaxOvertimeHours disables the limit.
type OvertimeCriterion struct{}

func NewOvertimeCriterion() *OvertimeCriterion {
	return &OvertimeCriterion{}
}

func (c *OvertimeCriterion) Name() string {
	return "Overtime"
}

func (c *OvertimeCriterion) IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool {
	if !c.enforced(state) {
		return true
	}
	hours := state.WeeklyHours(candidate.Staff.Member.ID, gap.Requirement.Date)
	return hours+gap.Window.Hours() <= state.Constraints.MaxOvertimeHours
}

func (c *OvertimeCriterion) ValidateRunState(state *RunState) []ValidationError {
	// Local assignments are not bound by the overtime limit, so a finished run
	// cannot be checked against it
	return nil
}

func (c *OvertimeCriterion) enforced(state *RunState) bool {
	return !state.Constraints.Policies.AllowOvertime && state.Constraints.MaxOvertimeHours > 0
}
