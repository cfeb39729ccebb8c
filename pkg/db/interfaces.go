package db

import (
	"context"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// RegistryStore supplies the reference tables loaded into the optimizer registry
type RegistryStore interface {
	GetLocations(ctx context.Context) ([]model.Location, error)
	GetTravelRoutes(ctx context.Context) ([]model.TravelRoute, error)
	GetStaffPreferences(ctx context.Context) ([]model.StaffPreferences, error)
}

// CoverageStore supplies coverage requirements, rosters and availability.
// It satisfies optimizer.CoverageSource.
type CoverageStore interface {
	GetCoverageRequirements(ctx context.Context, locationID string, dateRange model.DateRange) ([]model.CoverageRequirement, error)
	GetActiveStaffMembers(ctx context.Context, locationID string) ([]model.StaffMember, error)
	GetStaffAvailability(ctx context.Context, staffMemberID string, dateRange model.DateRange) ([]model.AvailabilitySlot, error)
}

// RunStore records optimization runs and their assignments
type RunStore interface {
	GetRuns(ctx context.Context) ([]OptimizationRun, error)
	GetAssignments(ctx context.Context, runID string) ([]AssignmentRecord, error)
	InsertRun(ctx context.Context, run *OptimizationRun, assignments []AssignmentRecord) error
}

// Database defines the interface for all database operations.
// Both postgres.DB and the fixtures store implement this interface.
type Database interface {
	RegistryStore
	CoverageStore
	RunStore
}
