package optimizer

import (
	"context"
	"sync"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// mockSource implements CoverageSource over in-memory maps
type mockSource struct {
	requirements map[string][]model.CoverageRequirement
	rosters      map[string][]model.StaffMember
	availability map[string][]model.AvailabilitySlot

	requirementsErr error
	rostersErr      error
	availabilityErr error

	mu    sync.Mutex
	calls int
}

func newMockSource() *mockSource {
	return &mockSource{
		requirements: map[string][]model.CoverageRequirement{},
		rosters:      map[string][]model.StaffMember{},
		availability: map[string][]model.AvailabilitySlot{},
	}
}

func (m *mockSource) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *mockSource) GetCoverageRequirements(ctx context.Context, locationID string, dateRange model.DateRange) ([]model.CoverageRequirement, error) {
	m.record()
	if m.requirementsErr != nil {
		return nil, m.requirementsErr
	}
	return m.requirements[locationID], nil
}

func (m *mockSource) GetActiveStaffMembers(ctx context.Context, locationID string) ([]model.StaffMember, error) {
	m.record()
	if m.rostersErr != nil {
		return nil, m.rostersErr
	}
	return m.rosters[locationID], nil
}

func (m *mockSource) GetStaffAvailability(ctx context.Context, staffMemberID string, dateRange model.DateRange) ([]model.AvailabilitySlot, error) {
	m.record()
	if m.availabilityErr != nil {
		return nil, m.availabilityErr
	}
	return m.availability[staffMemberID], nil
}

func (m *mockSource) addStaff(locationID string, member model.StaffMember, slots ...model.AvailabilitySlot) {
	m.rosters[locationID] = append(m.rosters[locationID], member)
	for i := range slots {
		slots[i].StaffMemberID = member.ID
	}
	m.availability[member.ID] = append(m.availability[member.ID], slots...)
}

func (m *mockSource) addRequirement(requirement model.CoverageRequirement) {
	m.requirements[requirement.LocationID] = append(m.requirements[requirement.LocationID], requirement)
}

func extraWork(date, start, end string) model.AvailabilitySlot {
	return model.AvailabilitySlot{Date: date, StartTime: start, EndTime: end, AvailableForExtraWork: true}
}

func nurse(id string) model.StaffMember {
	return model.StaffMember{ID: id, Name: id, Role: "nurse", Skills: []string{"nursing"}}
}

func nurseRequirement(id, locationID, date, start, end string, count int, priority model.Priority) model.CoverageRequirement {
	return model.CoverageRequirement{
		ID:             id,
		LocationID:     locationID,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		RequiredRole:   "nurse",
		RequiredSkills: []string{"nursing"},
		RequiredCount:  count,
		Priority:       priority,
	}
}

func testLocations(ids ...string) []model.Location {
	locations := make([]model.Location, 0, len(ids))
	for _, id := range ids {
		locations = append(locations, model.Location{ID: id, Name: id})
	}
	return locations
}

func route(from, to string, minutes int, miles float64) model.TravelRoute {
	return model.TravelRoute{
		FromLocationID:    from,
		ToLocationID:      to,
		DistanceMiles:     miles,
		TravelTimeMinutes: minutes,
		Reliability:       0.9,
	}
}

// newTestOptimizer builds an initialized optimizer with default options
func newTestOptimizer(source *mockSource, locations []model.Location, routes []model.TravelRoute, prefs []model.StaffPreferences) *Optimizer {
	o := New(source, nil, DefaultOptions())
	if err := o.Initialize(locations, routes, prefs); err != nil {
		panic(err)
	}
	return o
}
