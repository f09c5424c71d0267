package model

import (
	"fmt"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
)

// View gives a flow's rate function named access to the current state and the
// run's parameters. Only names declared by the flow at construction are read.
type View struct {
	state  epi.State
	index  map[string]int
	params epi.Params
}

// Compartment returns the current value of a declared compartment.
func (v View) Compartment(name string) float64 {
	return v.state[v.index[name]]
}

// Param returns a rate constant by name.
func (v View) Param(name string) float64 {
	return v.params[name]
}

// RateFunc computes a flow's instantaneous rate. n is the current total
// population (the state sum at call time, not the configured N, so that
// integrator drift is visible to the conservation check instead of being
// rescaled away).
type RateFunc func(t float64, v View, n float64) float64

// Flow moves individuals from one compartment to another at a declared rate.
// Reads and ParamNames list every compartment and parameter the rate function
// touches; Define checks them against the declared topology.
type Flow struct {
	Name       string
	From       string
	To         string
	Reads      []string
	ParamNames []string
	Rate       RateFunc
}

type compiledFlow struct {
	from, to int
	rate     RateFunc
}

// Definition is an immutable compartment model: an ordered compartment set
// plus the flow rules between compartments.
type Definition struct {
	variant      Variant
	compartments []string
	index        map[string]int
	flows        []compiledFlow
	params       []string
}

// Define builds a model from an explicit topology. It fails with a
// ConfigError on duplicate compartment names or on flows referencing
// undeclared compartments or parameters.
func Define(variant Variant, compartments []string, flows []Flow) (*Definition, error) {
	index := make(map[string]int, len(compartments))
	for i, name := range compartments {
		if _, ok := index[name]; ok {
			return nil, &epi.ConfigError{Field: name, Wrapped: epi.ErrDuplicateCompartment}
		}
		index[name] = i
	}

	d := &Definition{
		variant:      variant,
		compartments: append([]string(nil), compartments...),
		index:        index,
	}

	seen := make(map[string]bool)
	for _, f := range flows {
		from, ok := index[f.From]
		if !ok {
			return nil, &epi.ConfigError{
				Field:   fmt.Sprintf("flow %s: from %s", f.Name, f.From),
				Wrapped: epi.ErrUnknownCompartment,
			}
		}
		to, ok := index[f.To]
		if !ok {
			return nil, &epi.ConfigError{
				Field:   fmt.Sprintf("flow %s: to %s", f.Name, f.To),
				Wrapped: epi.ErrUnknownCompartment,
			}
		}
		for _, name := range f.Reads {
			if _, ok := index[name]; !ok {
				return nil, &epi.ConfigError{
					Field:   fmt.Sprintf("flow %s: reads %s", f.Name, name),
					Wrapped: epi.ErrUnknownCompartment,
				}
			}
		}
		for _, name := range f.ParamNames {
			if !seen[name] {
				seen[name] = true
				d.params = append(d.params, name)
			}
		}
		d.flows = append(d.flows, compiledFlow{from: from, to: to, rate: f.Rate})
	}

	return d, nil
}

// New builds one of the standard variants (SI, SIS, SIR, SEIR).
func New(v Variant) (*Definition, error) {
	spec, ok := variants[v]
	if !ok {
		return nil, &epi.ConfigError{Field: string(v), Wrapped: epi.ErrUnknownVariant}
	}
	return Define(v, spec.compartments, spec.flows)
}

func (d *Definition) Variant() Variant { return d.variant }

// Compartments returns the ordered compartment names.
func (d *Definition) Compartments() []string {
	return append([]string(nil), d.compartments...)
}

// RequiredParams returns the parameter names the flow rules read, in first-use
// order.
func (d *Definition) RequiredParams() []string {
	return append([]string(nil), d.params...)
}

// Index returns the column index of a compartment.
func (d *Definition) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Susceptible returns the compartment that absorbs the population remainder
// at initialization. By convention it is the first declared compartment.
func (d *Definition) Susceptible() string { return d.compartments[0] }

// Dim returns the number of compartments.
func (d *Definition) Dim() int { return len(d.compartments) }

// Validate checks that every parameter the flow rules read is present.
func (d *Definition) Validate(p epi.Params) error {
	for _, name := range d.params {
		if _, ok := p[name]; !ok {
			return &epi.ConfigError{Field: name, Wrapped: epi.ErrMissingParameter}
		}
	}
	return nil
}

// Derivatives evaluates dX/dt at (t, x) under parameters p. It is pure: no
// state is retained between calls, so the solver may re-evaluate freely at
// trial step sizes. Negative compartment values from integrator overshoot
// still produce a consistent result; detecting them is the invariant
// checker's job.
func (d *Definition) Derivatives(t float64, x epi.State, p epi.Params) epi.State {
	v := View{state: x, index: d.index, params: p}
	n := x.Sum()

	dx := make(epi.State, len(d.compartments))
	for _, f := range d.flows {
		r := f.rate(t, v, n)
		dx[f.from] -= r
		dx[f.to] += r
	}
	return dx
}
