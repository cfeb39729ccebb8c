package services

import (
	"context"
	"fmt"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
	"github.com/acganger/ganger-platform-sub011/pkg/db"
)

// mockRegistryStore implements db.RegistryStore
type mockRegistryStore struct {
	locations   []model.Location
	routes      []model.TravelRoute
	preferences []model.StaffPreferences
	locationErr error
}

func (m *mockRegistryStore) GetLocations(ctx context.Context) ([]model.Location, error) {
	if m.locationErr != nil {
		return nil, m.locationErr
	}
	return m.locations, nil
}

func (m *mockRegistryStore) GetTravelRoutes(ctx context.Context) ([]model.TravelRoute, error) {
	return m.routes, nil
}

func (m *mockRegistryStore) GetStaffPreferences(ctx context.Context) ([]model.StaffPreferences, error) {
	return m.preferences, nil
}

// mockCoverageStore implements db.CoverageStore
type mockCoverageStore struct {
	requirements map[string][]model.CoverageRequirement
	staff        map[string][]model.StaffMember
	availability map[string][]model.AvailabilitySlot
}

func (m *mockCoverageStore) GetCoverageRequirements(ctx context.Context, locationID string, dateRange model.DateRange) ([]model.CoverageRequirement, error) {
	return m.requirements[locationID], nil
}

func (m *mockCoverageStore) GetActiveStaffMembers(ctx context.Context, locationID string) ([]model.StaffMember, error) {
	return m.staff[locationID], nil
}

func (m *mockCoverageStore) GetStaffAvailability(ctx context.Context, staffMemberID string, dateRange model.DateRange) ([]model.AvailabilitySlot, error) {
	return m.availability[staffMemberID], nil
}

// mockRunStore implements db.RunStore
type mockRunStore struct {
	runs        []db.OptimizationRun
	assignments map[string][]db.AssignmentRecord
	insertErr   error
	inserted    int
}

func (m *mockRunStore) GetRuns(ctx context.Context) ([]db.OptimizationRun, error) {
	return append([]db.OptimizationRun(nil), m.runs...), nil
}

func (m *mockRunStore) GetAssignments(ctx context.Context, runID string) ([]db.AssignmentRecord, error) {
	if m.assignments == nil {
		return nil, fmt.Errorf("no assignments recorded")
	}
	return m.assignments[runID], nil
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.OptimizationRun, assignments []db.AssignmentRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if err := db.ValidateRun(run, assignments); err != nil {
		return err
	}
	if m.assignments == nil {
		m.assignments = map[string][]db.AssignmentRecord{}
	}
	m.inserted++
	m.runs = append(m.runs, *run)
	m.assignments[run.ID] = assignments
	return nil
}

// twoClinicStores has a north clinic short one nurse on 2025-03-03 and 2025-03-10,
// and a south nurse free to travel on both days
func twoClinicStores() (Stores, *mockRunStore) {
	registry := &mockRegistryStore{
		locations: []model.Location{{ID: "north"}, {ID: "south"}},
		routes: []model.TravelRoute{
			{FromLocationID: "south", ToLocationID: "north", DistanceMiles: 10, TravelTimeMinutes: 20, Reliability: 0.9},
		},
	}

	requirement := func(id, date string) model.CoverageRequirement {
		return model.CoverageRequirement{
			ID: id, LocationID: "north", Date: date, StartTime: "09:00", EndTime: "17:00",
			RequiredRole: "nurse", RequiredCount: 1, Priority: model.PriorityHigh,
		}
	}
	slot := func(date string) model.AvailabilitySlot {
		return model.AvailabilitySlot{StaffMemberID: "sam", Date: date, StartTime: "08:00", EndTime: "18:00", AvailableForExtraWork: true}
	}

	coverage := &mockCoverageStore{
		requirements: map[string][]model.CoverageRequirement{
			"north": {requirement("r1", "2025-03-03"), requirement("r2", "2025-03-10")},
		},
		staff: map[string][]model.StaffMember{
			"south": {{ID: "sam", Role: "nurse", PrimaryLocationID: "south"}},
		},
		availability: map[string][]model.AvailabilitySlot{
			"sam": {slot("2025-03-03"), slot("2025-03-10")},
		},
	}

	runs := &mockRunStore{}
	return Stores{Registry: registry, Coverage: coverage, Runs: runs}, runs
}
