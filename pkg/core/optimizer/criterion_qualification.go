package optimizer

// QualificationCriterion requires a travelling staff member to hold the requirement's
// skills and to be available for the whole requirement window, the same test the local
// pass applies to rostered staff.
type QualificationCriterion struct{}

func NewQualificationCriterion() *QualificationCriterion {
	return &QualificationCriterion{}
}

func (c *QualificationCriterion) Name() string {
	return "Qualification"
}

func (c *QualificationCriterion) IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool {
	return candidate.Staff.HasSkills(gap.Requirement.RequiredSkills) && candidate.Staff.IsAvailableFor(gap.Window)
}

func (c *QualificationCriterion) ValidateRunState(state *RunState) []ValidationError {
	// Checked per candidate only
	return nil
}
