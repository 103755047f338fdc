// Package window generates the tapering windows used for spectrum display.
//
// Windows come in symmetric form (filter design, the default) and
// periodic form ([WithPeriodic]) for FFT framing, where the last sample
// is left off so that consecutive frames tile without a doubled endpoint.
package window
