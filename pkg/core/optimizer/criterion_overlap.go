package optimizer

import (
	"fmt"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// NoOverlapCriterion prevents a staff member from holding two assignments whose time
// windows intersect. Overnight windows are compared against the following date too.
type NoOverlapCriterion struct{}

func NewNoOverlapCriterion() *NoOverlapCriterion {
	return &NoOverlapCriterion{}
}

func (c *NoOverlapCriterion) Name() string {
	return "NoOverlap"
}

func (c *NoOverlapCriterion) IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool {
	return !state.HasOverlap(candidate.Staff.Member.ID, gap.Window)
}

func (c *NoOverlapCriterion) ValidateRunState(state *RunState) []ValidationError {
	var errors []ValidationError

	for _, staffID := range state.staffOrder {
		assignments := state.StaffAssignments(staffID)
		for i := 0; i < len(assignments); i++ {
			a, err := model.NewWindow(assignments[i].Date, assignments[i].StartTime, assignments[i].EndTime)
			if err != nil {
				continue
			}
			for j := i + 1; j < len(assignments); j++ {
				b, err := model.NewWindow(assignments[j].Date, assignments[j].StartTime, assignments[j].EndTime)
				if err != nil {
					continue
				}
				if a.Overlaps(b) {
					errors = append(errors, ValidationError{
						StaffMemberID: staffID,
						Date:          a.Date,
						CriterionName: c.Name(),
						Description: fmt.Sprintf("%s-%s at %s overlaps %s-%s at %s",
							assignments[i].StartTime, assignments[i].EndTime, assignments[i].AssignedLocationID,
							assignments[j].StartTime, assignments[j].EndTime, assignments[j].AssignedLocationID),
					})
				}
			}
		}
	}

	return errors
}
