package db

import (
	"fmt"
	"sort"
)

// OptimizationRun is the persisted summary of one optimize call
type OptimizationRun struct {
	ID                string
	StartDate         string
	EndDate           string
	CreatedAt         string // RFC3339
	AssignmentCount   int
	TravelAssignments int
	TotalTravelCost   float64
	CoverageRatio     float64
	Warnings          int
}

// AssignmentRecord is a persisted assignment belonging to a run
type AssignmentRecord struct {
	ID                 string
	RunID              string
	StaffMemberID      string
	PrimaryLocationID  string
	AssignedLocationID string
	RequirementID      string
	Date               string
	StartTime          string
	EndTime            string
	Role               string
	TravelRequired     bool
	TravelTimeMinutes  int
	TravelCost         float64
	Confidence         float64
	ConflictRisk       float64
	EfficiencyScore    float64
}

// ValidateRun checks a run and its assignments before they are written
func ValidateRun(run *OptimizationRun, assignments []AssignmentRecord) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	if run.StartDate == "" || run.EndDate == "" {
		return fmt.Errorf("run %s has no date range", run.ID)
	}

	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if a.ID == "" {
			return fmt.Errorf("assignment for %s on %s has no id", a.StaffMemberID, a.Date)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate assignment id %s", a.ID)
		}
		seen[a.ID] = true
		if a.RunID != run.ID {
			return fmt.Errorf("assignment %s belongs to run %s, not %s", a.ID, a.RunID, run.ID)
		}
	}

	return nil
}

// SortRuns orders runs newest first. RFC3339 timestamps in UTC compare lexically.
func SortRuns(runs []OptimizationRun) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt > runs[j].CreatedAt
	})
}
