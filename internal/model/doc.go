// Package model defines compartmental epidemic models as flow tables.
//
// A [Definition] pairs an ordered compartment list with the flows moving
// individuals between compartments. Because every flow subtracts its rate from
// one compartment and adds it to another, the derivative vector sums to zero
// for any input, which is the conservation law of a closed-population model.
//
// The four standard variants are available by tag:
//
//	def, err := model.New(model.SIR)
//
// Custom topologies go through [Define], which validates every compartment and
// parameter reference at construction time rather than mid-integration.
package model
