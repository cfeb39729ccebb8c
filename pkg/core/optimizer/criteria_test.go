package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// mockCriterion returns a fixed verdict
type mockCriterion struct {
	name    string
	isValid bool
	errors  []ValidationError
}

func (m *mockCriterion) Name() string { return m.name }

func (m *mockCriterion) IsCandidateValid(state *RunState, gap *Gap, candidate *Candidate) bool {
	return m.isValid
}

func (m *mockCriterion) ValidateRunState(state *RunState) []ValidationError {
	return m.errors
}

// newCriteriaState returns a run state with a single travelling staff member
func newCriteriaState(t *testing.T, constraints Constraints, prefs ResolvedPreferences) (*RunState, *StaffCandidate) {
	t.Helper()

	state := newRunState(emptyRegistryData(), DefaultOptions(), constraints, model.DateRange{Start: "2025-03-03", End: "2025-03-09"})
	window, err := model.NewWindow("2025-03-03", "08:00", "18:00")
	require.NoError(t, err)

	prefs.StaffMemberID = "s1"
	staff := &StaffCandidate{
		Member:            model.StaffMember{ID: "s1", Skills: []string{"nursing"}},
		PrimaryLocationID: "Y",
		Availability:      []model.Window{window},
		Preferences:       prefs,
	}
	state.staff["s1"] = staff
	state.staffOrder = []string{"s1"}
	return state, staff
}

func newGap(t *testing.T, date, start, end string, skills ...string) *Gap {
	t.Helper()
	window, err := model.NewWindow(date, start, end)
	require.NoError(t, err)
	return &Gap{
		Requirement: model.CoverageRequirement{
			ID: "req", LocationID: "X", Date: date, StartTime: start, EndTime: end,
			RequiredSkills: skills, RequiredCount: 1,
		},
		Window:    window,
		Shortfall: 1,
	}
}

func travelAssignment(staffID, date, start, end string, minutes int) Assignment {
	return Assignment{
		StaffMemberID: staffID, AssignedLocationID: "X", Date: date, StartTime: start, EndTime: end,
		TravelRequired: true, TravelTimeMinutes: minutes,
	}
}

func TestIsCandidateValid_AnyVetoRejects(t *testing.T) {
	state, staff := newCriteriaState(t, DefaultConstraints(), ResolvedPreferences{MaxWeeklyCrossLocation: 3})
	gap := newGap(t, "2025-03-03", "09:00", "12:00")
	candidate := &Candidate{Staff: staff}

	assert.True(t, IsCandidateValid(state, gap, candidate, []Criterion{
		&mockCriterion{name: "a", isValid: true},
		&mockCriterion{name: "b", isValid: true},
	}))
	assert.False(t, IsCandidateValid(state, gap, candidate, []Criterion{
		&mockCriterion{name: "a", isValid: true},
		&mockCriterion{name: "b", isValid: false},
	}))
}

func TestValidateRunState_CollectsAll(t *testing.T) {
	state, _ := newCriteriaState(t, DefaultConstraints(), ResolvedPreferences{})

	errs := ValidateRunState(state, []Criterion{
		&mockCriterion{name: "a", errors: []ValidationError{{CriterionName: "a"}}},
		&mockCriterion{name: "b"},
		&mockCriterion{name: "c", errors: []ValidationError{{CriterionName: "c"}}},
	})
	require.Len(t, errs, 2)
	assert.Equal(t, "a", errs[0].CriterionName)
	assert.Equal(t, "c", errs[1].CriterionName)

	assert.NotNil(t, ValidateRunState(state, nil))
}

func TestQualificationCriterion(t *testing.T) {
	state, staff := newCriteriaState(t, DefaultConstraints(), ResolvedPreferences{})
	candidate := &Candidate{Staff: staff}
	criterion := NewQualificationCriterion()

	assert.True(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-03", "09:00", "17:00", "nursing"), candidate))
	assert.False(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-03", "09:00", "17:00", "phlebotomy"), candidate))
	assert.False(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-03", "07:00", "12:00"), candidate), "outside availability")
	assert.False(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-04", "09:00", "12:00"), candidate), "different day")
}

func TestNoOverlapCriterion(t *testing.T) {
	state, staff := newCriteriaState(t, DefaultConstraints(), ResolvedPreferences{})
	slot := &requirementSlot{}
	state.addAssignment(slot, travelAssignment("s1", "2025-03-03", "09:00", "12:00", 10))

	criterion := NewNoOverlapCriterion()
	candidate := &Candidate{Staff: staff}

	assert.False(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-03", "11:00", "13:00"), candidate))
	assert.True(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-03", "12:00", "13:00"), candidate), "touching windows do not overlap")
	assert.Empty(t, criterion.ValidateRunState(state))

	state.addAssignment(slot, travelAssignment("s1", "2025-03-03", "11:30", "14:00", 10))
	errs := criterion.ValidateRunState(state)
	require.Len(t, errs, 1)
	assert.Equal(t, "NoOverlap", errs[0].CriterionName)
	assert.Equal(t, "s1", errs[0].StaffMemberID)
}

func TestDailyTravelCriterion(t *testing.T) {
	constraints := DefaultConstraints()
	constraints.MaxTravelTimePerDay = 30
	state, staff := newCriteriaState(t, constraints, ResolvedPreferences{})
	criterion := NewDailyTravelCriterion()

	gap := newGap(t, "2025-03-03", "13:00", "16:00")
	assert.True(t, criterion.IsCandidateValid(state, gap, &Candidate{Staff: staff, Route: model.TravelRoute{TravelTimeMinutes: 30}}))

	state.addAssignment(&requirementSlot{}, travelAssignment("s1", "2025-03-03", "09:00", "12:00", 25))
	assert.False(t, criterion.IsCandidateValid(state, gap, &Candidate{Staff: staff, Route: model.TravelRoute{TravelTimeMinutes: 25}}))
	assert.True(t, criterion.IsCandidateValid(state, gap, &Candidate{Staff: staff, Route: model.TravelRoute{TravelTimeMinutes: 5}}))
	assert.True(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-04", "13:00", "16:00"), &Candidate{Staff: staff, Route: model.TravelRoute{TravelTimeMinutes: 25}}))
	assert.Empty(t, criterion.ValidateRunState(state))

	state.addAssignment(&requirementSlot{}, travelAssignment("s1", "2025-03-03", "13:00", "16:00", 25))
	errs := criterion.ValidateRunState(state)
	require.Len(t, errs, 1)
	assert.Equal(t, "2025-03-03", errs[0].Date)
}

func TestWeeklyLimitCriterion(t *testing.T) {
	constraints := DefaultConstraints()
	constraints.MaxCrossLocationAssignments = 2
	state, staff := newCriteriaState(t, constraints, ResolvedPreferences{MaxWeeklyCrossLocation: 2})
	criterion := NewWeeklyLimitCriterion()
	candidate := &Candidate{Staff: staff}

	state.addAssignment(&requirementSlot{}, travelAssignment("s1", "2025-03-03", "09:00", "12:00", 10))
	assert.True(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-05", "09:00", "12:00"), candidate))

	state.addAssignment(&requirementSlot{}, travelAssignment("s1", "2025-03-04", "09:00", "12:00", 10))
	assert.False(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-09", "09:00", "12:00"), candidate), "Sunday is in the same ISO week")
	assert.True(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-10", "09:00", "12:00"), candidate), "next ISO week")

	// Local assignments do not count
	local := travelAssignment("s1", "2025-03-05", "09:00", "12:00", 0)
	local.TravelRequired = false
	state.addAssignment(&requirementSlot{}, local)
	assert.Empty(t, criterion.ValidateRunState(state))

	state.addAssignment(&requirementSlot{}, travelAssignment("s1", "2025-03-06", "09:00", "12:00", 10))
	errs := criterion.ValidateRunState(state)
	require.Len(t, errs, 1)
	assert.Equal(t, "WeeklyCrossLocationLimit", errs[0].CriterionName)
	assert.Equal(t, "2025-03-03", errs[0].Date)
}

func TestCompensationCriterion(t *testing.T) {
	constraints := DefaultConstraints()
	constraints.Policies.CompensateTravel = false
	state, staff := newCriteriaState(t, constraints, ResolvedPreferences{CompensationRequired: true})
	criterion := NewCompensationCriterion()
	gap := newGap(t, "2025-03-03", "09:00", "12:00")

	assert.False(t, criterion.IsCandidateValid(state, gap, &Candidate{Staff: staff}))

	state.Constraints.Policies.CompensateTravel = true
	assert.True(t, criterion.IsCandidateValid(state, gap, &Candidate{Staff: staff}))
}

func TestOvertimeCriterion(t *testing.T) {
	constraints := DefaultConstraints()
	constraints.Policies.AllowOvertime = false
	constraints.MaxOvertimeHours = 6
	state, staff := newCriteriaState(t, constraints, ResolvedPreferences{})
	criterion := NewOvertimeCriterion()
	candidate := &Candidate{Staff: staff}

	state.addAssignment(&requirementSlot{}, travelAssignment("s1", "2025-03-03", "09:00", "12:00", 10))
	assert.True(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-04", "09:00", "12:00"), candidate))
	assert.False(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-04", "09:00", "13:00"), candidate))

	state.Constraints.Policies.AllowOvertime = true
	assert.True(t, criterion.IsCandidateValid(state, newGap(t, "2025-03-04", "09:00", "13:00"), candidate))
}
