// Package moog provides a four-pole Moog-style ladder low-pass filter with
// global resonance feedback.
//
// The model is the classic "Stilson/Smith-like" digital approximation:
//
//	f   = 2π·cutoff/sampleRate      (clamped to [0, π])
//	af  = 1 - f
//	sqf = f²
//	fb  = resonance·(1 - 0.15·sqf)
//
// Each sample the input has out4·fb subtracted, is scaled by 0.35013·sqf²,
// and runs through four one-pole stages of the form
//
//	out = in + 0.3·prevIn + af·prevOut
//
// The input gain term vanishes as the cutoff approaches 0 Hz; this is a
// property of the model. High resonance settings self-oscillate and are
// deliberately not limited.
//
// The filter is stateful, deterministic, allocation free on the sample path,
// and supports explicit state save/restore via [State].
package moog
