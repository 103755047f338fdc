// Package rc implements the single-pole RC lowpass, alpha = dt/(rc+dt),
// and a band-pass built from two of them: a highpass formed by subtracting
// one lowpass from its own input, followed by an independent lowpass.
package rc
