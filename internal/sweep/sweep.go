// Package sweep runs parameter sweeps as independent parallel simulations.
package sweep

import (
	"sync"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/metrics"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sim"
)

// Request describes the base run every sweep point starts from.
type Request struct {
	Variant    model.Variant
	Population float64
	Initial    map[string]float64
	Params     epi.Params
	Horizon    float64
	Step       float64
}

// Point is the outcome at one swept parameter value.
type Point struct {
	Value   float64
	Metrics map[string]float64
}

// Values builds n evenly spaced sweep values from lo to hi inclusive.
func Values(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	span := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*span
	}
	out[n-1] = hi
	return out
}

// Run sweeps one parameter across values, executing each run in its own
// goroutine. Runs share no mutable state: the parameter set is cloned per
// point. Results come back in value order; the first run error, if any, is
// returned after all runs finish.
func Run(req Request, param string, values []float64) ([]Point, error) {
	points := make([]Point, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()

			p := req.Params.Clone()
			p[param] = val

			res, err := sim.Run(req.Variant, req.Population, req.Initial, p, req.Horizon, req.Step)
			if err != nil {
				errs[idx] = err
				return
			}
			points[idx] = Point{Value: val, Metrics: metrics.Summary(res, req.Population)}
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}
