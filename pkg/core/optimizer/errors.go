package optimizer

import (
	"errors"
	"fmt"
)

// ErrInvalidDateRange is returned when an optimization range is malformed or reversed
var ErrInvalidDateRange = errors.New("invalid date range")

// ConfigurationError reports a malformed registry record passed to Initialize
type ConfigurationError struct {
	Table string
	Index int
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s record at index %d: %v", e.Table, e.Index, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DataFetchError reports a failed or malformed read from the coverage source.
// It is fatal to the optimization call.
type DataFetchError struct {
	Op  string
	Key string
	Err error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("failed to %s (%s): %v", e.Op, e.Key, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}

// OptimizationFailure wraps any other fault raised while optimizing, including
// cancellation and recovered panics
type OptimizationFailure struct {
	Stage string
	Err   error
}

func (e *OptimizationFailure) Error() string {
	return fmt.Sprintf("optimization failed during %s: %v", e.Stage, e.Err)
}

func (e *OptimizationFailure) Unwrap() error {
	return e.Err
}
