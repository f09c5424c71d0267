// Package solver provides explicit steppers for non-stiff initial value
// problems and a driver that reports the solution on a requested time grid.
package solver

import (
	"fmt"
	"math"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
)

// Func evaluates dX/dt at (t, x). It must be pure: the driver re-evaluates it
// at trial step sizes.
type Func func(t float64, x epi.State) epi.State

type Stepper interface {
	Step(f Func, x epi.State, t, dt float64) epi.State
}

// AdaptiveStepper attempts a step of at most dt, shrinking internally until
// the local error estimate meets tol. It returns the new state, the step
// actually taken, and a suggested next step.
type AdaptiveStepper interface {
	Stepper
	StepAdaptive(f Func, x epi.State, t, dt, tol float64) (next epi.State, used, suggest float64, err error)
}

// Options tune the Solve driver.
type Options struct {
	// Tol is the relative local error tolerance for adaptive steppers.
	Tol float64
	// InitStep seeds the first trial step. Zero means the first grid spacing.
	InitStep float64
	// MaxStep caps the internal step. Zero means uncapped.
	MaxStep float64
}

func DefaultOptions() Options {
	return Options{Tol: 1e-6}
}

// New returns a stepper by name.
func New(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "dopri45", "rk45":
		return NewDormandPrince(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

// CheckGrid validates that a time grid is non-empty and strictly increasing.
func CheckGrid(grid []float64) error {
	if len(grid) == 0 {
		return &epi.ConfigError{Field: "grid", Wrapped: epi.ErrBadTimeGrid}
	}
	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			return &epi.ConfigError{
				Field:   fmt.Sprintf("grid[%d]", i),
				Wrapped: epi.ErrBadTimeGrid,
			}
		}
	}
	return nil
}

// Solve integrates x' = f(t, x) from grid[0] and returns one state per grid
// entry, in grid order. The state at grid[0] is the initial state exactly.
// Internal steps never overshoot a grid time, so reported states are computed
// at the requested times rather than interpolated. On failure it returns an
// IntegrationError carrying the furthest time reached; no partial trajectory
// is returned.
func Solve(f Func, x0 epi.State, grid []float64, st Stepper, opts Options) ([]epi.State, error) {
	if err := CheckGrid(grid); err != nil {
		return nil, err
	}
	if opts.Tol <= 0 {
		opts.Tol = DefaultOptions().Tol
	}

	out := make([]epi.State, 0, len(grid))
	out = append(out, x0.Clone())

	x := x0.Clone()
	t := grid[0]

	dt := opts.InitStep
	if dt <= 0 {
		if len(grid) > 1 {
			dt = grid[1] - grid[0]
		} else {
			dt = 1
		}
	}

	ad, adaptive := st.(AdaptiveStepper)

	for _, target := range grid[1:] {
		for remaining(t, target) {
			h := dt
			if opts.MaxStep > 0 && h > opts.MaxStep {
				h = opts.MaxStep
			}
			if t+h > target {
				h = target - t
			}

			if adaptive {
				next, used, suggest, err := ad.StepAdaptive(f, x, t, h, opts.Tol)
				if err != nil {
					return nil, &epi.IntegrationError{Time: t, Wrapped: err}
				}
				x = next
				t += used
				if suggest > 0 {
					dt = suggest
				}
			} else {
				x = st.Step(f, x, t, h)
				if !x.IsValid() {
					return nil, &epi.IntegrationError{Time: t, Wrapped: epi.ErrInvalidState}
				}
				t += h
			}
		}
		t = target
		out = append(out, x.Clone())
	}

	return out, nil
}

// remaining reports whether t is meaningfully short of target, absorbing the
// rounding left over from t += h accumulation.
func remaining(t, target float64) bool {
	return target-t > 1e-12*math.Max(1, math.Abs(target))
}
