// Package butterworth designs and runs Butterworth lowpass and highpass
// filters specified by pass-band and stop-band edges.
//
// A design takes a pass frequency, a stop frequency, the minimum pass-band
// transmission and the maximum stop-band transmission (both as linear
// fractions in (0, 1)). The response type follows from the edge order:
// fpass < fstop designs a lowpass, fpass > fstop a highpass. The minimum
// even order satisfying both constraints is derived with the standard
// Butterworth order formula and the cutoff is placed so that the stop-band
// constraint is met exactly.
//
// Two topologies are available. [TopologyCascade] runs every pole pair as
// its own biquad section. [TopologyLegacySingle] keeps only the section of
// the pole pair nearest the unit circle, which is what early versions of
// this design produced; use it when outputs must match those versions
// sample for sample.
//
// [Lowpass], [Highpass] and [Bandpass] wrap the designer behind a
// (cutoff, gain, sharpness) control surface.
package butterworth
