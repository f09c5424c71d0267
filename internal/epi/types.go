package epi

import "math"

// State holds one value per compartment, in the order declared by the model
// definition that produced it.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total population represented by the state.
func (s State) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Params maps parameter names to rate constants. Treated as immutable for the
// duration of one run.
type Params map[string]float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
