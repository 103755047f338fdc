// Package osc provides sample-by-sample generators: a phase-accumulating
// sine, a pulse with adjustable width, and seeded white noise.
//
// All generators implement [core.Generator]. Phase is kept in cycles
// (one period == 1.0) so frequency changes never cause discontinuities.
package osc
