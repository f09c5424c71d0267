package sim

import (
	"math"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/solver"
)

// Grid builds the uniform reporting grid 0, step, 2*step, ..., horizon. When
// the horizon is not a multiple of step, the horizon itself is appended so the
// grid always ends exactly there.
func Grid(horizon, step float64) ([]float64, error) {
	if step <= 0 || step > horizon {
		return nil, &epi.ConfigError{Field: "step", Wrapped: epi.ErrBadStep}
	}
	n := int(math.Floor(horizon/step + 1e-9))
	grid := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		grid = append(grid, float64(i)*step)
	}
	if last := grid[len(grid)-1]; horizon-last > 1e-9*math.Max(1, horizon) {
		grid = append(grid, horizon)
	} else {
		grid[len(grid)-1] = horizon
	}
	return grid, nil
}

// Run simulates one of the standard variants on a uniform grid from 0 to
// horizon using the adaptive Dormand-Prince stepper with default tolerances.
//
// initial names the starting counts of non-susceptible compartments; whatever
// remains of the population goes to the susceptible compartment. All
// validation happens before any integration work.
func Run(variant model.Variant, population float64, initial map[string]float64, params epi.Params, horizon, step float64) (*Result, error) {
	def, err := model.New(variant)
	if err != nil {
		return nil, err
	}
	grid, err := Grid(horizon, step)
	if err != nil {
		return nil, err
	}
	return RunWith(def, population, initial, params, grid, solver.NewDormandPrince(), solver.DefaultOptions())
}

// RunWith is Run with an explicit definition, time grid, stepper, and solver
// options. The grid may be any strictly increasing sequence.
func RunWith(def *model.Definition, population float64, initial map[string]float64, params epi.Params, grid []float64, st solver.Stepper, opts solver.Options) (*Result, error) {
	x0, err := InitialState(def, population, initial)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(params); err != nil {
		return nil, err
	}
	if err := solver.CheckGrid(grid); err != nil {
		return nil, err
	}

	p := params.Clone()
	f := func(t float64, x epi.State) epi.State {
		return def.Derivatives(t, x, p)
	}

	states, err := solver.Solve(f, x0, grid, st, opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Variant:      def.Variant(),
		Compartments: def.Compartments(),
		Times:        append([]float64(nil), grid...),
		States:       states,
	}, nil
}

// InitialState builds the initial state vector: declared counts go to their
// compartments, the remainder to the susceptible compartment. The susceptible
// compartment itself may not be named; it is always derived, so there is a
// single source of truth for N.
func InitialState(def *model.Definition, population float64, initial map[string]float64) (epi.State, error) {
	if population <= 0 {
		return nil, &epi.ConfigError{Field: "population", Wrapped: epi.ErrEmptyPopulation}
	}

	x0 := make(epi.State, def.Dim())
	sum := 0.0
	for name, v := range initial {
		idx, ok := def.Index(name)
		if !ok || name == def.Susceptible() {
			return nil, &epi.ConfigError{Field: name, Wrapped: epi.ErrUnknownCompartment}
		}
		if v < 0 {
			return nil, &epi.ConfigError{Field: name, Wrapped: epi.ErrNegativeInitial}
		}
		x0[idx] = v
		sum += v
	}
	if sum > population {
		return nil, &epi.ConfigError{Field: "initial", Wrapped: epi.ErrInitialExceedsPopulation}
	}

	susIdx, _ := def.Index(def.Susceptible())
	x0[susIdx] = population - sum
	return x0, nil
}
