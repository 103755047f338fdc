// Package harmonic implements a small additive synthesizer: a bank of
// phase accumulators, one per harmonic, summed under a raised-cosine
// spectral envelope.
//
// Harmonic i runs at baseHz·(i - offset). With the default offset of 0 the
// fundamental slot is silent (0 Hz), so the usual setting is offset = -1,
// which places slot 0 on the fundamental.
//
// Phases persist across configuration changes. Lowering the harmonic count
// parks the upper slots; raising it again resumes them where they stopped.
package harmonic
