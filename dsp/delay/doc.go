// Package delay provides a fixed-length feedback delay line.
//
// The history is a circular buffer sized once at construction, so the
// per-sample path never allocates. Two feedback topologies are offered:
//
//   - [ModeDelay] returns the sample written delaySamples calls ago and
//     stores input + feedback·delayed. With feedback 0 it is a pure delay.
//   - [ModeAccumulate] returns input + delayed and stores
//     output·feedback, the echo accumulator used by the synth voice.
//
// A caller-supplied sidechain processor can transform the accumulated
// sample before it is written back.
package delay
