package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/internal/config"
	"github.com/acganger/ganger-platform-sub011/pkg/core/optimizer"
	"github.com/acganger/ganger-platform-sub011/pkg/db"
	"github.com/acganger/ganger-platform-sub011/pkg/metrics"
)

// OptimizeCoverageOptions select the range and mode of an optimization run
type OptimizeCoverageOptions struct {
	StartDate string
	EndDate   string
	DryRun    bool
}

// OptimizeCoverageResult is the outcome of OptimizeCoverage
type OptimizeCoverageResult struct {
	Run    *db.OptimizationRun
	Result *optimizer.Result
	Saved  bool
}

// Stores groups the collaborators a run reads from and writes to
type Stores struct {
	Registry db.RegistryStore
	Coverage db.CoverageStore
	Runs     db.RunStore
}

// OptimizeCoverage loads the registry, runs the optimizer over the requested range
// and, unless this is a dry run, records the run and its assignments.
// recorder may be nil.
func OptimizeCoverage(
	ctx context.Context,
	stores Stores,
	cfg *config.Config,
	recorder *metrics.Recorder,
	logger *zap.Logger,
	opts OptimizeCoverageOptions,
) (*OptimizeCoverageResult, error) {
	logger.Debug("Starting optimizeCoverage",
		zap.String("start", opts.StartDate),
		zap.String("end", opts.EndDate),
		zap.Bool("dry_run", opts.DryRun))

	opt, err := newOptimizer(ctx, stores.Registry, stores.Coverage, cfg, logger)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := opt.Optimize(ctx, opts.StartDate, opts.EndDate, cfg.OptimizerConstraints())
	elapsed := time.Since(started)
	if err != nil {
		if recorder != nil {
			recorder.RecordFailure(elapsed)
		}
		return nil, fmt.Errorf("optimization failed: %w", err)
	}
	if recorder != nil {
		recorder.RecordResult(result, elapsed)
	}

	run := &db.OptimizationRun{
		ID:                uuid.New().String(),
		StartDate:         opts.StartDate,
		EndDate:           opts.EndDate,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
		AssignmentCount:   len(result.Assignments),
		TravelAssignments: result.TravelCosts.TravelAssignments,
		TotalTravelCost:   result.TravelCosts.TotalCost,
		CoverageRatio:     result.CoverageRatio(),
		Warnings:          len(result.Warnings),
	}

	logger.Info("Optimization complete",
		zap.String("run_id", run.ID),
		zap.Int("assignments", run.AssignmentCount),
		zap.Int("travel_assignments", run.TravelAssignments),
		zap.Float64("coverage_ratio", run.CoverageRatio),
		zap.Duration("elapsed", elapsed))

	if opts.DryRun {
		logger.Info("Dry run, not saving run", zap.String("run_id", run.ID))
		return &OptimizeCoverageResult{Run: run, Result: result}, nil
	}

	if len(result.ValidationErrors) > 0 {
		logger.Warn("Run has constraint violations",
			zap.String("run_id", run.ID),
			zap.Int("count", len(result.ValidationErrors)))
	}

	if err := stores.Runs.InsertRun(ctx, run, toRecords(run.ID, result.Assignments)); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	logger.Info("Run saved", zap.String("run_id", run.ID))

	return &OptimizeCoverageResult{Run: run, Result: result, Saved: true}, nil
}

// AnalyzeCoverageGaps reports the shortfall left after local staffing, highest priority first
func AnalyzeCoverageGaps(
	ctx context.Context,
	stores Stores,
	cfg *config.Config,
	logger *zap.Logger,
	startDate, endDate string,
) ([]optimizer.Gap, error) {
	opt, err := newOptimizer(ctx, stores.Registry, stores.Coverage, cfg, logger)
	if err != nil {
		return nil, err
	}
	gaps, err := opt.AnalyzeGaps(ctx, startDate, endDate, cfg.OptimizerConstraints())
	if err != nil {
		return nil, fmt.Errorf("gap analysis failed: %w", err)
	}
	return gaps, nil
}

// ListTravelOptions reports the routes each available staff member could travel
func ListTravelOptions(
	ctx context.Context,
	stores Stores,
	cfg *config.Config,
	logger *zap.Logger,
	startDate, endDate string,
) ([]optimizer.StaffTravelOptions, error) {
	opt, err := newOptimizer(ctx, stores.Registry, stores.Coverage, cfg, logger)
	if err != nil {
		return nil, err
	}
	options, err := opt.TravelOptions(ctx, startDate, endDate, cfg.OptimizerConstraints())
	if err != nil {
		return nil, fmt.Errorf("travel option analysis failed: %w", err)
	}
	return options, nil
}

// newOptimizer loads the registry tables and builds an optimizer over the coverage store
func newOptimizer(
	ctx context.Context,
	registry db.RegistryStore,
	coverage db.CoverageStore,
	cfg *config.Config,
	logger *zap.Logger,
) (*optimizer.Optimizer, error) {
	logger.Debug("Loading registry")
	locations, err := registry.GetLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}
	routes, err := registry.GetTravelRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch travel routes: %w", err)
	}
	preferences, err := registry.GetStaffPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff preferences: %w", err)
	}
	logger.Debug("Registry loaded",
		zap.Int("locations", len(locations)),
		zap.Int("routes", len(routes)),
		zap.Int("preferences", len(preferences)))

	var calendar BlackoutCalendar
	if len(cfg.Blackouts) > 0 {
		calendar = cfg
	}

	opt := optimizer.New(withBlackouts(coverage, calendar, logger), logger, cfg.OptimizerOptions())
	if err := opt.Initialize(locations, routes, preferences); err != nil {
		return nil, fmt.Errorf("failed to initialize registry: %w", err)
	}
	return opt, nil
}

func toRecords(runID string, assignments []optimizer.Assignment) []db.AssignmentRecord {
	records := make([]db.AssignmentRecord, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, db.AssignmentRecord{
			ID:                 uuid.New().String(),
			RunID:              runID,
			StaffMemberID:      a.StaffMemberID,
			PrimaryLocationID:  a.PrimaryLocationID,
			AssignedLocationID: a.AssignedLocationID,
			RequirementID:      a.RequirementID,
			Date:               a.Date,
			StartTime:          a.StartTime,
			EndTime:            a.EndTime,
			Role:               a.Role,
			TravelRequired:     a.TravelRequired,
			TravelTimeMinutes:  a.TravelTimeMinutes,
			TravelCost:         a.TravelCost,
			Confidence:         a.Confidence,
			ConflictRisk:       a.ConflictRisk,
			EfficiencyScore:    a.EfficiencyScore,
		})
	}
	return records
}
