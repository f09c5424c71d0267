// Package sim binds a model definition, initial counts, parameters, and a
// time grid into one integration run.
//
// A run is one blocking call that returns a complete, immutable [Result];
// there is no streaming or partial delivery. Independent runs share no mutable
// state and may execute concurrently from separate goroutines.
//
//	res, err := sim.Run(model.SIR, 100000,
//		map[string]float64{"I": 10},
//		epi.Params{"beta": 1.875, "gamma": 0.125},
//		100, 1)
//
// The package performs no I/O. Persistence, export, and plotting consume the
// Result elsewhere.
package sim
