package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
)

func TestGrid(t *testing.T) {
	tests := []struct {
		name    string
		horizon float64
		step    float64
		wantLen int
		wantEnd float64
	}{
		{"unit steps", 50, 1, 51, 50},
		{"fractional", 1, 0.25, 5, 1},
		{"single step", 5, 5, 2, 5},
		{"non-multiple horizon", 10, 3, 5, 10}, // 0,3,6,9,10
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := Grid(tt.horizon, tt.step)
			if err != nil {
				t.Fatalf("Grid failed: %v", err)
			}
			if len(grid) != tt.wantLen {
				t.Errorf("expected %d points, got %d (%v)", tt.wantLen, len(grid), grid)
			}
			if grid[0] != 0 {
				t.Errorf("grid must start at 0, got %f", grid[0])
			}
			if grid[len(grid)-1] != tt.wantEnd {
				t.Errorf("grid must end at %f, got %f", tt.wantEnd, grid[len(grid)-1])
			}
			for i := 1; i < len(grid); i++ {
				if grid[i] <= grid[i-1] {
					t.Errorf("grid not increasing at %d: %v", i, grid)
				}
			}
		})
	}
}

func TestGrid_BadStep(t *testing.T) {
	tests := []struct {
		name    string
		horizon float64
		step    float64
	}{
		{"zero step", 10, 0},
		{"negative step", 10, -1},
		{"step beyond horizon", 10, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grid(tt.horizon, tt.step)
			if !errors.Is(err, epi.ErrBadStep) {
				t.Errorf("expected ErrBadStep, got %v", err)
			}
		})
	}
}

func TestInitialState_SusceptibleRemainder(t *testing.T) {
	def, _ := model.New(model.SIR)

	x0, err := InitialState(def, 1000, map[string]float64{"I": 10, "R": 5})
	if err != nil {
		t.Fatalf("InitialState failed: %v", err)
	}

	if x0[0] != 985 {
		t.Errorf("S = %f, want 985", x0[0])
	}
	if x0[1] != 10 || x0[2] != 5 {
		t.Errorf("I, R = %f, %f, want 10, 5", x0[1], x0[2])
	}
	if x0.Sum() != 1000 {
		t.Errorf("initial state sums to %f, want 1000", x0.Sum())
	}
}

func TestInitialState_Errors(t *testing.T) {
	def, _ := model.New(model.SIR)

	tests := []struct {
		name       string
		population float64
		initial    map[string]float64
		want       error
	}{
		{"zero population", 0, map[string]float64{"I": 1}, epi.ErrEmptyPopulation},
		{"negative population", -5, map[string]float64{"I": 1}, epi.ErrEmptyPopulation},
		{"unknown compartment", 1000, map[string]float64{"X": 1}, epi.ErrUnknownCompartment},
		{"explicit susceptible", 1000, map[string]float64{"S": 10}, epi.ErrUnknownCompartment},
		{"negative count", 1000, map[string]float64{"I": -1}, epi.ErrNegativeInitial},
		{"counts exceed population", 1000, map[string]float64{"I": 600, "R": 500}, epi.ErrInitialExceedsPopulation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitialState(def, tt.population, tt.initial)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRun_MissingParameter(t *testing.T) {
	_, err := Run(model.SIR, 1000, map[string]float64{"I": 1}, epi.Params{"beta": 0.3}, 10, 1)
	if !errors.Is(err, epi.ErrMissingParameter) {
		t.Errorf("expected ErrMissingParameter, got %v", err)
	}
}

// Configuration errors abort before any integration work: a derivative that
// would blow up must never be evaluated.
func TestRun_FailsBeforeIntegration(t *testing.T) {
	_, err := Run(model.SI, 100, map[string]float64{"I": 200}, epi.Params{"beta": 0.5}, 10, 1)

	var cfgErr *epi.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !errors.Is(err, epi.ErrInitialExceedsPopulation) {
		t.Errorf("expected ErrInitialExceedsPopulation, got %v", err)
	}
}

func TestRun_InitialStateExact(t *testing.T) {
	res, err := Run(model.SEIR, 100000, map[string]float64{"E": 10},
		epi.Params{"beta": 0.35, "sigma": 0.2, "gamma": 0.14}, 20, 1)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Times[0] != 0 {
		t.Errorf("first time = %f, want 0", res.Times[0])
	}
	want := epi.State{99990, 10, 0, 0}
	for i, w := range want {
		if res.States[0][i] != w {
			t.Errorf("state[0][%d] = %f, want %f exactly", i, res.States[0][i], w)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	params := epi.Params{"beta": 0.4, "gamma": 0.1}
	initial := map[string]float64{"I": 10}

	a, err := Run(model.SIR, 10000, initial, params, 50, 1)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := Run(model.SIR, 10000, initial, params, 50, 1)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range a.States {
		for j := range a.States[i] {
			if a.States[i][j] != b.States[i][j] {
				t.Fatalf("runs diverge at [%d][%d]: %v vs %v", i, j, a.States[i][j], b.States[i][j])
			}
		}
	}
}

func TestResult_Accessors(t *testing.T) {
	res, err := Run(model.SIS, 1000, map[string]float64{"I": 10},
		epi.Params{"beta": 0.4, "gamma": 0.1}, 10, 1)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Len() != 11 {
		t.Errorf("Len = %d, want 11", res.Len())
	}

	infected := res.Series("I")
	if len(infected) != 11 || infected[0] != 10 {
		t.Errorf("Series(I) = len %d, first %f", len(infected), infected[0])
	}
	if res.Series("R") != nil {
		t.Error("Series of undeclared compartment should be nil")
	}

	tm, row := res.At(0)
	if tm != 0 || row["S"] != 990 || row["I"] != 10 {
		t.Errorf("At(0) = %f, %v", tm, row)
	}

	final := res.Final()
	if math.Abs(final["S"]+final["I"]-1000) > 1e-6 {
		t.Errorf("final state sums to %f", final["S"]+final["I"])
	}
}
