// Package onepole provides cheap recursive smoothers: a one-pole lowpass
// ("boxcar" in older patches), a DC remover, and a fixed three-tap IIR
// smoother. None of them depend on the sample rate.
package onepole
