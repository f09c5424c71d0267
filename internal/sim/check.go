package sim

import (
	"fmt"
	"math"
)

// Property names an invariant the checker verifies.
type Property string

const (
	// Conservation: compartment values sum to the configured population.
	Conservation Property = "conservation"
	// NonNegative: no compartment value below -tolerance.
	NonNegative Property = "non-negative"
)

// Violation identifies one time point where an invariant broke tolerance.
type Violation struct {
	Index       int
	Time        float64
	Property    Property
	Compartment string // empty for conservation breaches
	Value       float64
}

func (v Violation) String() string {
	if v.Property == Conservation {
		return fmt.Sprintf("t=%.4f: population sum %.6f off target", v.Time, v.Value)
	}
	return fmt.Sprintf("t=%.4f: %s = %.6g below zero", v.Time, v.Compartment, v.Value)
}

// Check verifies the epidemiological invariants over a finished result:
// the compartment sum stays within tolerance of the population at every time
// point, and no compartment dips below -tolerance. It returns one entry per
// breach; an empty slice means the result is clean. The result is never
// mutated, and violations are advisory: policy belongs to the caller.
func Check(r *Result, population, tolerance float64) []Violation {
	var out []Violation
	for i, s := range r.States {
		sum := s.Sum()
		if math.Abs(sum-population) > tolerance {
			out = append(out, Violation{
				Index:    i,
				Time:     r.Times[i],
				Property: Conservation,
				Value:    sum,
			})
		}
		for j, v := range s {
			if v < -tolerance {
				out = append(out, Violation{
					Index:       i,
					Time:        r.Times[i],
					Property:    NonNegative,
					Compartment: r.Compartments[j],
					Value:       v,
				})
			}
		}
	}
	return out
}
