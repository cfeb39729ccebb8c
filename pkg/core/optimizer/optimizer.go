package optimizer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// Optimizer assigns staff to coverage requirements across locations. It owns its
// registry for its lifetime. Concurrent Optimize calls are safe.
type Optimizer struct {
	registry *Registry
	source   CoverageSource
	logger   *zap.Logger
	options  Options
	criteria []Criterion
}

// New creates an Optimizer reading requirements, rosters and availability from source.
// Zero-valued option groups take their defaults.
func New(source CoverageSource, logger *zap.Logger, options Options) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	options = options.withDefaults()
	criteria := append(DefaultCriteria(), options.ExtraCriteria...)
	return &Optimizer{
		registry: NewRegistry(),
		source:   source,
		logger:   logger,
		options:  options,
		criteria: criteria,
	}
}

// Initialize loads locations, travel routes and staff preferences into the registry
func (o *Optimizer) Initialize(locations []model.Location, routes []model.TravelRoute, preferences []model.StaffPreferences) error {
	if err := o.registry.Initialize(locations, routes, preferences); err != nil {
		return err
	}
	o.logger.Debug("Initialized registry",
		zap.Int("locations", len(locations)),
		zap.Int("routes", len(routes)),
		zap.Int("preferences", len(preferences)))
	return nil
}

// Registry returns the optimizer's registry
func (o *Optimizer) Registry() *Registry {
	return o.registry
}

// Optimize runs the local pass, gap analysis and cross-location assignment over the
// inclusive date range and returns the aggregated result. A data fetch failure aborts
// the call with a *DataFetchError. Cancellation and unexpected faults return an
// *OptimizationFailure. No partial result is returned on error.
func (o *Optimizer) Optimize(ctx context.Context, startDate, endDate string, constraints Constraints) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &OptimizationFailure{Stage: "optimize", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	state, err := o.prepare(ctx, startDate, endDate, constraints)
	if err != nil {
		return nil, err
	}

	runLocalPass(state)
	localCount := len(state.assignments)

	gaps := analyzeGaps(state)
	o.logger.Debug("Local pass complete",
		zap.Int("local_assignments", localCount),
		zap.Int("gaps", len(gaps)))

	if err := o.resolveGaps(ctx, state, gaps); err != nil {
		return nil, &OptimizationFailure{Stage: "resolve gaps", Err: err}
	}

	result = o.aggregate(state)
	result.ValidationErrors = ValidateRunState(state, o.criteria)

	o.logger.Info("Optimization complete",
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("travel_assignments", result.TravelCosts.TravelAssignments),
		zap.Float64("travel_cost", result.TravelCosts.TotalCost),
		zap.Float64("coverage", result.Efficiency.CoverageOptimization),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("validation_errors", len(result.ValidationErrors)))

	return result, nil
}

// AnalyzeGaps returns the gaps left after the local pass, highest priority first
func (o *Optimizer) AnalyzeGaps(ctx context.Context, startDate, endDate string, constraints Constraints) ([]Gap, error) {
	state, err := o.prepare(ctx, startDate, endDate, constraints)
	if err != nil {
		return nil, err
	}
	runLocalPass(state)
	return analyzeGaps(state), nil
}

// TravelOptions returns the viable routes of every staff member available in the range
func (o *Optimizer) TravelOptions(ctx context.Context, startDate, endDate string, constraints Constraints) ([]StaffTravelOptions, error) {
	state, err := o.prepare(ctx, startDate, endDate, constraints)
	if err != nil {
		return nil, err
	}
	return state.travelOptions(), nil
}

// prepare validates the range and runs the gather phase against a registry snapshot
func (o *Optimizer) prepare(ctx context.Context, startDate, endDate string, constraints Constraints) (*RunState, error) {
	dateRange, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, &OptimizationFailure{Stage: "validate range", Err: err}
	}

	state := newRunState(o.registry.snapshot(), o.options, constraints, dateRange)

	if err := o.analyzeCoverage(ctx, state); err != nil {
		return nil, err
	}
	if err := o.gatherAvailableStaff(ctx, state); err != nil {
		return nil, err
	}
	buildTravelOptions(state)

	o.logger.Debug("Gathered coverage and staff",
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.Int("requirements", len(state.slots)),
		zap.Int("available_staff", len(state.staffOrder)))

	return state, nil
}

func parseDateRange(startDate, endDate string) (model.DateRange, error) {
	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: start %q: %v", ErrInvalidDateRange, startDate, err)
	}
	end, err := time.Parse(model.DateLayout, endDate)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: end %q: %v", ErrInvalidDateRange, endDate, err)
	}
	if end.Before(start) {
		return model.DateRange{}, fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, startDate, endDate)
	}
	return model.DateRange{Start: startDate, End: endDate}, nil
}
