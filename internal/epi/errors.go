package epi

import (
	"errors"
	"fmt"
)

// Sentinel causes for configuration and integration failures.
var (
	// ErrUnknownVariant indicates a model variant name outside SI/SIS/SIR/SEIR.
	ErrUnknownVariant = errors.New("epi: unknown model variant")

	// ErrDuplicateCompartment indicates a compartment name declared twice.
	ErrDuplicateCompartment = errors.New("epi: duplicate compartment name")

	// ErrUnknownCompartment indicates a reference to an undeclared compartment.
	ErrUnknownCompartment = errors.New("epi: unknown compartment")

	// ErrMissingParameter indicates a flow rule references a parameter the
	// caller did not supply.
	ErrMissingParameter = errors.New("epi: missing parameter")

	// ErrEmptyPopulation indicates a non-positive population size.
	ErrEmptyPopulation = errors.New("epi: population must be positive")

	// ErrInitialExceedsPopulation indicates initial counts summing past N.
	ErrInitialExceedsPopulation = errors.New("epi: initial counts exceed population")

	// ErrNegativeInitial indicates a negative initial compartment count.
	ErrNegativeInitial = errors.New("epi: negative initial count")

	// ErrBadTimeGrid indicates a time grid that is empty or not strictly
	// increasing.
	ErrBadTimeGrid = errors.New("epi: time grid must be strictly increasing")

	// ErrBadStep indicates a step size that is non-positive or larger than
	// the horizon.
	ErrBadStep = errors.New("epi: step must be positive and at most the horizon")

	// ErrStepTooSmall indicates the adaptive step fell below the minimum
	// before reaching the requested accuracy.
	ErrStepTooSmall = errors.New("epi: adaptive step below minimum")

	// ErrInvalidState indicates the solver produced NaN or Inf.
	ErrInvalidState = errors.New("epi: invalid state (NaN or Inf detected)")
)

// ConfigError reports an input rejected before any integration work starts.
type ConfigError struct {
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Wrapped)
}

func (e *ConfigError) Unwrap() error { return e.Wrapped }

// IntegrationError reports a solver failure, carrying the furthest time point
// successfully reached.
type IntegrationError struct {
	Time    float64
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failed at t=%.6g: %v", e.Time, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error { return e.Wrapped }
