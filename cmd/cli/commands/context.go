package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/internal/config"
	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
	"github.com/acganger/ganger-platform-sub011/pkg/core/services"
	"github.com/acganger/ganger-platform-sub011/pkg/metrics"
	"github.com/acganger/ganger-platform-sub011/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Stores   services.Stores
	Postgres *postgres.DB // nil unless a postgres source is configured
	Recorder *metrics.Recorder
	Logger   *zap.Logger
	Ctx      context.Context
}

// resolveRange fills an omitted start with today and an omitted end with start + 6 days
func resolveRange(start, end string) (string, string, error) {
	if start == "" {
		start = time.Now().Format(model.DateLayout)
	}
	if end == "" {
		parsed, err := time.Parse(model.DateLayout, start)
		if err != nil {
			return "", "", fmt.Errorf("start must be YYYY-MM-DD, got %q", start)
		}
		end = parsed.AddDate(0, 0, 6).Format(model.DateLayout)
	}
	return start, end, nil
}
