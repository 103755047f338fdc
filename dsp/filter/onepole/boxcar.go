package onepole

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Boxcar is the recurrence mem = k·x + (1-k)·mem. Larger k raises the
// cutoff; k == 1 passes the input through unchanged.
type Boxcar struct {
	k   float64
	mem float64
}

// NewBoxcar returns a one-pole lowpass with smoothing factor k in (0, 1].
func NewBoxcar(k float64) (*Boxcar, error) {
	b := &Boxcar{}
	if err := b.SetK(k); err != nil {
		return nil, err
	}

	return b, nil
}

// SetK updates the smoothing factor. History is kept.
func (b *Boxcar) SetK(k float64) error {
	if !core.IsFinite(k) || k <= 0 || k > 1 {
		return fmt.Errorf("onepole: %w: k must be in (0, 1]: %v", core.ErrInvalidConfig, k)
	}

	b.k = k

	return nil
}

// K returns the smoothing factor.
func (b *Boxcar) K() float64 { return b.k }

// ProcessSample filters one sample.
func (b *Boxcar) ProcessSample(x float64) float64 {
	b.mem = b.k*x + (1-b.k)*b.mem
	return b.mem
}

// ProcessInPlace filters buf in place.
func (b *Boxcar) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = b.ProcessSample(buf[i])
	}
}

// Reset zeroes the filter memory.
func (b *Boxcar) Reset() { b.mem = 0 }

// State returns the filter memory.
func (b *Boxcar) State() float64 { return b.mem }

// SetState sets the filter memory, for example to start a glide from a
// known value instead of zero.
func (b *Boxcar) SetState(mem float64) { b.mem = mem }
