// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing over a two-sample input
// and output history:
//
//	y = B0·x + B1·x1 + B2·x2 - A1·y1 - A2·y2
//
// Multiple sections can be cascaded via [Chain] for higher-order filters.
// A Chain can be created with spare capacity so that redesigns which change
// the section count never allocate on the audio thread.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/butterworth.
package biquad
