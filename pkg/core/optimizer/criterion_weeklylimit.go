package optimizer

import (
	"fmt"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// WeeklyLimitCriterion caps the number of cross-location assignments a staff member
// takes in one ISO week. The cap is the run constraint, lowered by the staff member's
// own preference when that is smaller.
type WeeklyLimitCriterion struct{}

func NewWeeklyLimitCriterion() *WeeklyLimitCriterion {
	return &WeeklyLimitCriterion{}
}

func (c *WeeklyLimitCriterion) Name() string {
	return "WeeklyCrossLocationLimit"
}

func (c *WeeklyLimitCriterion) IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool {
	limit := weeklyLimit(state, candidate.Staff)
	count := state.WeeklyCrossLocationCount(candidate.Staff.Member.ID, gap.Requirement.Date)
	return count+1 <= limit
}

func (c *WeeklyLimitCriterion) ValidateRunState(state *RunState) []ValidationError {
	var errors []ValidationError

	for _, staffID := range state.staffOrder {
		limit := weeklyLimit(state, state.staff[staffID])

		type week struct{ year, week int }
		counts := map[week]int{}
		firstDate := map[week]string{}
		var weeks []week

		for _, a := range state.StaffAssignments(staffID) {
			if !a.TravelRequired {
				continue
			}
			year, w, err := model.ISOWeek(a.Date)
			if err != nil {
				continue
			}
			key := week{year, w}
			if _, ok := counts[key]; !ok {
				weeks = append(weeks, key)
				firstDate[key] = a.Date
			}
			counts[key]++
		}

		for _, key := range weeks {
			if counts[key] > limit {
				errors = append(errors, ValidationError{
					StaffMemberID: staffID,
					Date:          firstDate[key],
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("%d cross-location assignments in week %d-W%02d (limit %d)", counts[key], key.year, key.week, limit),
				})
			}
		}
	}

	return errors
}

func weeklyLimit(state *RunState, candidate *StaffCandidate) int {
	return min(state.Constraints.MaxCrossLocationAssignments, candidate.Preferences.MaxWeeklyCrossLocation)
}
