// Package metrics summarizes finished outbreak trajectories.
package metrics

import (
	"math"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sim"
)

// PeakInfected returns the maximum of the infectious curve and the time it
// occurs. A result without an I compartment yields zeros.
func PeakInfected(r *sim.Result) (value, at float64) {
	series := r.Series("I")
	for i, v := range series {
		if v > value {
			value = v
			at = r.Times[i]
		}
	}
	return value, at
}

// AttackRate is the share of the population no longer susceptible at the end
// of the run.
func AttackRate(r *sim.Result, population float64) float64 {
	if population <= 0 {
		return 0
	}
	series := r.Series("S")
	if len(series) == 0 {
		return 0
	}
	return (population - series[len(series)-1]) / population
}

// ConservationDrift is the worst relative deviation of the compartment sum
// from the configured population across the trajectory.
func ConservationDrift(r *sim.Result, population float64) float64 {
	if population <= 0 {
		return 0
	}
	max := 0.0
	for _, s := range r.States {
		drift := math.Abs(s.Sum()-population) / population
		if drift > max {
			max = drift
		}
	}
	return max
}

// FinalInfected is the infectious count at the last time point.
func FinalInfected(r *sim.Result) float64 {
	series := r.Series("I")
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// Summary computes the standard per-run metrics in one map, keyed the way the
// CLI and storage report them.
func Summary(r *sim.Result, population float64) map[string]float64 {
	peak, at := PeakInfected(r)
	return map[string]float64{
		"peak_infected":      peak,
		"peak_time":          at,
		"final_infected":     FinalInfected(r),
		"attack_rate":        AttackRate(r, population),
		"conservation_drift": ConservationDrift(r, population),
	}
}
