package fixtures

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
	"github.com/acganger/ganger-platform-sub011/pkg/db"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

var _ db.Database = (*Store)(nil)

// Store serves a YAML dataset from memory. Runs written to it are kept in memory only.
type Store struct {
	dataset Dataset

	mu          sync.RWMutex
	runs        []db.OptimizationRun
	assignments map[string][]db.AssignmentRecord
}

// Load reads and validates a dataset file
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset
func Parse(data []byte) (*Store, error) {
	var dataset Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return New(dataset)
}

// New validates a dataset and wraps it in a store
func New(dataset Dataset) (*Store, error) {
	if err := validate.Struct(dataset); err != nil {
		return nil, fmt.Errorf("data file validation failed: %w", err)
	}
	for i, template := range dataset.Coverage {
		if template.RRule == "" {
			continue
		}
		if _, err := template.rule(); err != nil {
			return nil, fmt.Errorf("invalid coverage[%d]: %w", i, err)
		}
	}
	for i, template := range dataset.Availability {
		if template.RRule == "" {
			continue
		}
		if _, err := template.rule(); err != nil {
			return nil, fmt.Errorf("invalid availability[%d]: %w", i, err)
		}
	}

	return &Store{
		dataset:     dataset,
		assignments: map[string][]db.AssignmentRecord{},
	}, nil
}

// GetLocations returns the dataset's locations in file order
func (s *Store) GetLocations(ctx context.Context) ([]model.Location, error) {
	return slices.Clone(s.dataset.Locations), nil
}

// GetTravelRoutes returns the dataset's routes in file order
func (s *Store) GetTravelRoutes(ctx context.Context) ([]model.TravelRoute, error) {
	return slices.Clone(s.dataset.Routes), nil
}

// GetStaffPreferences returns the dataset's preference records in file order
func (s *Store) GetStaffPreferences(ctx context.Context) ([]model.StaffPreferences, error) {
	return slices.Clone(s.dataset.Preferences), nil
}

// GetCoverageRequirements expands the location's coverage templates within the range.
// Requirements are ordered by template, then date.
func (s *Store) GetCoverageRequirements(ctx context.Context, locationID string, dateRange model.DateRange) ([]model.CoverageRequirement, error) {
	var requirements []model.CoverageRequirement
	for _, template := range s.dataset.Coverage {
		if template.LocationID != locationID {
			continue
		}
		dates, err := template.Dates(dateRange)
		if err != nil {
			return nil, fmt.Errorf("failed to expand coverage for %s: %w", locationID, err)
		}
		for _, date := range dates {
			requirements = append(requirements, model.CoverageRequirement{
				ID:             template.requirementID(date),
				LocationID:     template.LocationID,
				Date:           date,
				StartTime:      template.StartTime,
				EndTime:        template.EndTime,
				RequiredRole:   template.Role,
				RequiredSkills: slices.Clone(template.Skills),
				RequiredCount:  template.Count,
				Priority:       template.Priority,
			})
		}
	}
	return requirements, nil
}

// GetActiveStaffMembers returns active staff rostered at the location, in file order
func (s *Store) GetActiveStaffMembers(ctx context.Context, locationID string) ([]model.StaffMember, error) {
	var members []model.StaffMember
	for _, staff := range s.dataset.Staff {
		if staff.Inactive {
			continue
		}
		rosters := staff.Locations
		if len(rosters) == 0 && staff.PrimaryLocationID != "" {
			rosters = []string{staff.PrimaryLocationID}
		}
		if !slices.Contains(rosters, locationID) {
			continue
		}
		members = append(members, model.StaffMember{
			ID:                staff.ID,
			Name:              staff.Name,
			Role:              staff.Role,
			Skills:            slices.Clone(staff.Skills),
			PrimaryLocationID: staff.PrimaryLocationID,
		})
	}
	return members, nil
}

// GetStaffAvailability expands the staff member's availability templates within the range
func (s *Store) GetStaffAvailability(ctx context.Context, staffMemberID string, dateRange model.DateRange) ([]model.AvailabilitySlot, error) {
	var slots []model.AvailabilitySlot
	for _, template := range s.dataset.Availability {
		if template.StaffMemberID != staffMemberID {
			continue
		}
		dates, err := template.Dates(dateRange)
		if err != nil {
			return nil, fmt.Errorf("failed to expand availability for %s: %w", staffMemberID, err)
		}
		for _, date := range dates {
			slots = append(slots, model.AvailabilitySlot{
				StaffMemberID:         staffMemberID,
				Date:                  date,
				StartTime:             template.StartTime,
				EndTime:               template.EndTime,
				AvailableForExtraWork: template.ExtraWork,
			})
		}
	}
	return slots, nil
}

// GetRuns returns the runs recorded since the store was loaded, newest first
func (s *Store) GetRuns(ctx context.Context) ([]db.OptimizationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := slices.Clone(s.runs)
	db.SortRuns(runs)
	return runs, nil
}

// GetAssignments returns the assignments recorded for a run
func (s *Store) GetAssignments(ctx context.Context, runID string) ([]db.AssignmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.assignments[runID]), nil
}

// InsertRun records a run and its assignments in memory
func (s *Store) InsertRun(ctx context.Context, run *db.OptimizationRun, assignments []db.AssignmentRecord) error {
	if err := db.ValidateRun(run, assignments); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.assignments[run.ID]; exists {
		return fmt.Errorf("run %s already recorded", run.ID)
	}
	s.runs = append(s.runs, *run)
	s.assignments[run.ID] = slices.Clone(assignments)
	return nil
}
