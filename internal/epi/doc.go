// Package epi provides the core vocabulary for compartmental epidemic
// simulation:
//
//   - [State]: vector of compartment occupancies, ordered by the model's
//     compartment list
//   - [Params]: named rate constants (beta, gamma, sigma, ...)
//   - error taxonomy: [ConfigError] for inputs rejected before integration,
//     [IntegrationError] for solver failures mid-run
//
// The package holds no model topology and performs no I/O; model definitions
// live in internal/model and the solver in internal/solver.
package epi
