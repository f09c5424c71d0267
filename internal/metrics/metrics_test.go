package metrics

import (
	"math"
	"testing"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Variant:      model.SIR,
		Compartments: []string{"S", "I", "R"},
		Times:        []float64{0, 1, 2, 3},
		States: []epi.State{
			{990, 10, 0},
			{900, 80, 20},
			{700, 200, 100},
			{500, 150, 350},
		},
	}
}

func TestPeakInfected(t *testing.T) {
	peak, at := PeakInfected(sampleResult())
	if peak != 200 {
		t.Errorf("peak = %f, want 200", peak)
	}
	if at != 2 {
		t.Errorf("peak time = %f, want 2", at)
	}
}

func TestAttackRate(t *testing.T) {
	got := AttackRate(sampleResult(), 1000)
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("attack rate = %f, want 0.5", got)
	}
}

func TestConservationDrift(t *testing.T) {
	r := sampleResult()
	if got := ConservationDrift(r, 1000); got != 0 {
		t.Errorf("drift = %g, want 0 for a conserved result", got)
	}

	r.States[2] = epi.State{700, 200, 99} // sums to 999
	got := ConservationDrift(r, 1000)
	if math.Abs(got-0.001) > 1e-12 {
		t.Errorf("drift = %g, want 0.001", got)
	}
}

func TestFinalInfected(t *testing.T) {
	if got := FinalInfected(sampleResult()); got != 150 {
		t.Errorf("final infected = %f, want 150", got)
	}
}

func TestSummary(t *testing.T) {
	summary := Summary(sampleResult(), 1000)

	want := []string{"peak_infected", "peak_time", "final_infected", "attack_rate", "conservation_drift"}
	for _, key := range want {
		if _, ok := summary[key]; !ok {
			t.Errorf("summary missing %s", key)
		}
	}
	if summary["peak_infected"] != 200 {
		t.Errorf("summary peak = %f", summary["peak_infected"])
	}
}

func TestMetrics_NoInfectiousCompartment(t *testing.T) {
	r := &sim.Result{
		Compartments: []string{"A", "B"},
		Times:        []float64{0},
		States:       []epi.State{{1, 2}},
	}

	if peak, at := PeakInfected(r); peak != 0 || at != 0 {
		t.Errorf("expected zeros without I compartment, got %f at %f", peak, at)
	}
	if got := FinalInfected(r); got != 0 {
		t.Errorf("expected zero final infected, got %f", got)
	}
}
