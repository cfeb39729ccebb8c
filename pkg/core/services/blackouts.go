package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
	"github.com/acganger/ganger-platform-sub011/pkg/core/optimizer"
)

// BlackoutCalendar expands blackout dates within a range
type BlackoutCalendar interface {
	BlackoutDates(dateRange model.DateRange) (map[string]string, error)
}

// blackoutSource drops coverage requirements that fall on blackout dates
type blackoutSource struct {
	optimizer.CoverageSource
	calendar BlackoutCalendar
	logger   *zap.Logger
}

func withBlackouts(source optimizer.CoverageSource, calendar BlackoutCalendar, logger *zap.Logger) optimizer.CoverageSource {
	if calendar == nil {
		return source
	}
	return &blackoutSource{CoverageSource: source, calendar: calendar, logger: logger}
}

func (s *blackoutSource) GetCoverageRequirements(ctx context.Context, locationID string, dateRange model.DateRange) ([]model.CoverageRequirement, error) {
	requirements, err := s.CoverageSource.GetCoverageRequirements(ctx, locationID, dateRange)
	if err != nil {
		return nil, err
	}

	blackouts, err := s.calendar.BlackoutDates(dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to expand blackout dates: %w", err)
	}
	if len(blackouts) == 0 {
		return requirements, nil
	}

	kept := requirements[:0:0]
	for _, requirement := range requirements {
		if reason, blocked := blackouts[requirement.Date]; blocked {
			s.logger.Debug("Skipping requirement on blackout date",
				zap.String("location", locationID),
				zap.String("requirement", requirement.ID),
				zap.String("date", requirement.Date),
				zap.String("reason", reason))
			continue
		}
		kept = append(kept, requirement)
	}
	return kept, nil
}
