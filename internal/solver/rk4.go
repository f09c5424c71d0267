package solver

import "github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"

type RK4 struct {
	k1, k2, k3, k4 epi.State
	scratch        epi.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(epi.State, n)
		r.k2 = make(epi.State, n)
		r.k3 = make(epi.State, n)
		r.k4 = make(epi.State, n)
		r.scratch = make(epi.State, n)
	}
}

func (r *RK4) Step(f Func, x epi.State, t, dt float64) epi.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, f(t, x))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, f(t+dt*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, f(t+dt*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, f(t+dt, r.scratch))

	result := make(epi.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
