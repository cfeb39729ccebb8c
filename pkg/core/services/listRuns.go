package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/pkg/db"
)

// RunSummary is a recorded run with its assignments
type RunSummary struct {
	Run         db.OptimizationRun
	Assignments []db.AssignmentRecord
}

// ListRuns returns up to count of the most recent recorded runs, newest first.
// A count of zero or less returns every run.
func ListRuns(ctx context.Context, store db.RunStore, logger *zap.Logger, count int) ([]RunSummary, error) {
	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	db.SortRuns(runs)
	if count > 0 && len(runs) > count {
		runs = runs[:count]
	}
	logger.Debug("Fetched runs", zap.Int("count", len(runs)))

	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		assignments, err := store.GetAssignments(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch assignments for run %s: %w", run.ID, err)
		}
		summaries = append(summaries, RunSummary{Run: run, Assignments: assignments})
	}
	return summaries, nil
}
