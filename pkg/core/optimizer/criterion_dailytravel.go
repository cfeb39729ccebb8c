package optimizer

import "fmt"

// DailyTravelCriterion caps the total travel time a staff member accumulates on one day.
type DailyTravelCriterion struct{}

func NewDailyTravelCriterion() *DailyTravelCriterion {
	return &DailyTravelCriterion{}
}

func (c *DailyTravelCriterion) Name() string {
	return "DailyTravelTime"
}

func (c *DailyTravelCriterion) IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool {
	accumulated := state.DailyTravelMinutes(candidate.Staff.Member.ID, gap.Requirement.Date)
	return accumulated+candidate.Route.TravelTimeMinutes <= state.Constraints.MaxTravelTimePerDay
}

func (c *DailyTravelCriterion) ValidateRunState(state *RunState) []ValidationError {
	var errors []ValidationError

	for _, staffID := range state.staffOrder {
		var dates []string
		seen := map[string]bool{}
		for _, a := range state.StaffAssignments(staffID) {
			if !seen[a.Date] {
				seen[a.Date] = true
				dates = append(dates, a.Date)
			}
		}

		for _, date := range dates {
			total := state.DailyTravelMinutes(staffID, date)
			if total > state.Constraints.MaxTravelTimePerDay {
				errors = append(errors, ValidationError{
					StaffMemberID: staffID,
					Date:          date,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("%d minutes of travel (limit %d)", total, state.Constraints.MaxTravelTimePerDay),
				})
			}
		}
	}

	return errors
}
