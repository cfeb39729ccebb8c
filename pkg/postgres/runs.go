package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
	"github.com/acganger/ganger-platform-sub011/pkg/db"
)

var _ db.Database = (*DB)(nil)

// GetRuns retrieves all optimization runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.OptimizationRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, start_date, end_date, created_at, assignment_count, travel_assignments,
		       total_travel_cost, coverage_ratio, warnings
		FROM optimization_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.OptimizationRun
	for rows.Next() {
		var r db.OptimizationRun
		var start, end, created time.Time
		if err := rows.Scan(&r.ID, &start, &end, &created, &r.AssignmentCount, &r.TravelAssignments,
			&r.TotalTravelCost, &r.CoverageRatio, &r.Warnings); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartDate = start.Format(model.DateLayout)
		r.EndDate = end.Format(model.DateLayout)
		r.CreatedAt = created.UTC().Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetAssignments retrieves the assignments recorded for a run
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.AssignmentRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, staff_member_id, primary_location_id, assigned_location_id, requirement_id,
		       date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), role,
		       travel_required, travel_time_minutes, travel_cost, confidence, conflict_risk, efficiency_score
		FROM assignment
		WHERE run_id = $1
		ORDER BY date, start_time, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.AssignmentRecord
	for rows.Next() {
		var a db.AssignmentRecord
		var date time.Time
		if err := rows.Scan(&a.ID, &a.RunID, &a.StaffMemberID, &a.PrimaryLocationID, &a.AssignedLocationID,
			&a.RequirementID, &date, &a.StartTime, &a.EndTime, &a.Role, &a.TravelRequired,
			&a.TravelTimeMinutes, &a.TravelCost, &a.Confidence, &a.ConflictRisk, &a.EfficiencyScore); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Date = date.Format(model.DateLayout)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// InsertRun writes a run and its assignments in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.OptimizationRun, assignments []db.AssignmentRecord) error {
	if err := db.ValidateRun(run, assignments); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO optimization_run (id, start_date, end_date, created_at, assignment_count,
		                              travel_assignments, total_travel_cost, coverage_ratio, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.StartDate, run.EndDate, run.CreatedAt, run.AssignmentCount, run.TravelAssignments,
		run.TotalTravelCost, run.CoverageRatio, run.Warnings)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, run_id, staff_member_id, primary_location_id, assigned_location_id,
			                        requirement_id, date, start_time, end_time, role, travel_required,
			                        travel_time_minutes, travel_cost, confidence, conflict_risk, efficiency_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, a.ID, a.RunID, a.StaffMemberID, a.PrimaryLocationID, a.AssignedLocationID, a.RequirementID,
			a.Date, a.StartTime, a.EndTime, a.Role, a.TravelRequired, a.TravelTimeMinutes, a.TravelCost,
			a.Confidence, a.ConflictRisk, a.EfficiencyScore)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	d.logger.Debug("Inserted run",
		zap.String("run_id", run.ID),
		zap.Int("assignments", len(assignments)))

	return nil
}
