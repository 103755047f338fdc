// Package synth is the real-time block processor of the synth voice.
//
// A [Processor] renders fixed-size blocks. At the start of every block it
// takes one consistent snapshot of the control parameters from its
// [ParamStore], maps octaves to Hz (11·2^octave), configures the source
// and filter stages once, and then runs the per-sample loop: source, filter,
// optional DC removal and echo, volume, dither.
//
// Control threads write parameters through the ParamStore; the audio thread
// only performs an atomic pointer load per block. Configuration failures
// never reach the sample loop: the failing stage keeps its previous valid
// configuration and the error is reported through the handler installed
// with [WithConfigErrorHandler] and through [Processor.LastConfigError].
package synth
