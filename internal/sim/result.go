package sim

import (
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
)

// Result is the trajectory of one run: one state per grid time, in grid
// order. It is produced once and never mutated afterwards.
type Result struct {
	Variant      model.Variant
	Compartments []string
	Times        []float64
	States       []epi.State
}

// Len returns the number of reported time points.
func (r *Result) Len() int { return len(r.Times) }

func (r *Result) index(name string) int {
	for i, c := range r.Compartments {
		if c == name {
			return i
		}
	}
	return -1
}

// Series returns the trajectory of one compartment, or nil if the name is not
// part of the model.
func (r *Result) Series(name string) []float64 {
	idx := r.index(name)
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s[idx]
	}
	return out
}

// At returns the time and a name-keyed view of the state at row i.
func (r *Result) At(i int) (float64, map[string]float64) {
	row := make(map[string]float64, len(r.Compartments))
	for j, c := range r.Compartments {
		row[c] = r.States[i][j]
	}
	return r.Times[i], row
}

// Final returns the name-keyed state at the last time point.
func (r *Result) Final() map[string]float64 {
	_, row := r.At(len(r.Times) - 1)
	return row
}
