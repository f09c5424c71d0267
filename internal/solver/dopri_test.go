package solver

import (
	"math"
	"testing"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
)

// undamped oscillator: x'' = -x, energy 0.5*(x^2 + v^2) is conserved
func oscillator(t float64, x epi.State) epi.State {
	return epi.State{x[1], -x[0]}
}

func energy(x epi.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestDormandPrince_EnergyConservation(t *testing.T) {
	d := NewDormandPrince()
	x := epi.State{1.0, 0.0}
	initial := energy(x)

	tt := 0.0
	for i := 0; i < 10000; i++ {
		next, used, _, err := d.StepAdaptive(oscillator, x, tt, 0.01, 1e-6)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		x = next
		tt += used
	}

	drift := math.Abs(energy(x)-initial) / initial
	if drift > 1e-6 {
		t.Errorf("energy drift too high: %e", drift)
	}
}

func TestDormandPrince_StepAdaptive(t *testing.T) {
	d := NewDormandPrince()
	x0 := epi.State{1.0, 0.0}

	next, used, suggest, err := d.StepAdaptive(oscillator, x0, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !next.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if used <= 0 || used > 0.1 {
		t.Errorf("used step out of range: %f", used)
	}
	if suggest <= 0 {
		t.Errorf("suggested step must be positive: %f", suggest)
	}
}

func TestDormandPrince_ShrinksOnRoughTolerance(t *testing.T) {
	d := NewDormandPrince()
	x0 := epi.State{1.0, 0.0}

	// a huge trial step must still come back within tolerance
	next, used, _, err := d.StepAdaptive(oscillator, x0, 0, 50.0, 1e-9)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if used >= 50.0 {
		t.Errorf("expected internal step reduction, used %f", used)
	}
	if !next.IsValid() {
		t.Error("invalid state after reduced step")
	}
}

func TestDormandPrince_VsRK4Accuracy(t *testing.T) {
	rk4 := NewRK4()
	dp := NewDormandPrince()
	x4 := epi.State{1.0, 0.0}
	x45 := epi.State{1.0, 0.0}
	dt := 0.1

	tt := 0.0
	for i := 0; i < 100; i++ {
		x4 = rk4.Step(oscillator, x4, tt, dt)
		x45 = dp.Step(oscillator, x45, tt, dt)
		tt += dt
	}

	e4 := math.Abs(energy(x4) - 0.5)
	e45 := math.Abs(energy(x45) - 0.5)
	if e45 > e4 {
		t.Logf("note: adaptive stepper not tighter than RK4 here (%.2e vs %.2e)", e45, e4)
	}
	if e45 > 1e-4 {
		t.Errorf("adaptive stepper drift too high: %e", e45)
	}
}
