package solver

import "github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f Func, x epi.State, t, dt float64) epi.State {
	dx := f(t, x)
	result := make(epi.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
