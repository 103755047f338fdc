package delay

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	// DefaultDelaySamples is the delay length used by the synth echo.
	DefaultDelaySamples = 400
	// DefaultFeedback is the feedback gain used when none is given.
	DefaultFeedback = 0.99
)

// Mode selects the feedback topology.
type Mode int

const (
	// ModeDelay outputs the delayed sample and feeds input + feedback·delayed.
	ModeDelay Mode = iota
	// ModeAccumulate outputs input + delayed and feeds output·feedback.
	ModeAccumulate
)

func (m Mode) String() string {
	switch m {
	case ModeDelay:
		return "delay"
	case ModeAccumulate:
		return "accumulate"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Option mutates line construction parameters.
type Option func(*config) error

type config struct {
	feedback float64
	mode     Mode
}

// WithFeedback sets the feedback gain in [0, 1).
func WithFeedback(fb float64) Option {
	return func(cfg *config) error {
		if err := validateFeedback(fb); err != nil {
			return err
		}

		cfg.feedback = fb

		return nil
	}
}

// WithMode selects the feedback topology. Default is ModeDelay.
func WithMode(m Mode) Option {
	return func(cfg *config) error {
		if m != ModeDelay && m != ModeAccumulate {
			return fmt.Errorf("delay: %w: unknown mode: %d", core.ErrInvalidConfig, int(m))
		}

		cfg.mode = m

		return nil
	}
}

func validateFeedback(fb float64) error {
	if !(fb >= 0 && fb < 1) {
		return fmt.Errorf("delay: %w: feedback must be in [0, 1): %v", core.ErrInvalidConfig, fb)
	}

	return nil
}

// Line is a circular delay line with feedback.
type Line struct {
	buffer   []float64
	writePos int
	feedback float64
	mode     Mode

	// single cell used by ProcessNoTime
	cell float64
}

// New returns a delay line of delaySamples samples.
func New(delaySamples int, opts ...Option) (*Line, error) {
	if delaySamples <= 0 {
		return nil, fmt.Errorf("delay: %w: delay samples must be > 0: %d", core.ErrInvalidConfig, delaySamples)
	}

	cfg := config{feedback: DefaultFeedback, mode: ModeDelay}
	for _, o := range opts {
		if o == nil {
			continue
		}

		if err := o(&cfg); err != nil {
			return nil, err
		}
	}

	return &Line{
		buffer:   make([]float64, delaySamples),
		feedback: cfg.feedback,
		mode:     cfg.mode,
	}, nil
}

// Len returns the delay length in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Feedback returns the feedback gain.
func (d *Line) Feedback() float64 { return d.feedback }

// SetFeedback updates the feedback gain.
func (d *Line) SetFeedback(fb float64) error {
	if err := validateFeedback(fb); err != nil {
		return err
	}

	d.feedback = fb

	return nil
}

// Mode returns the feedback topology.
func (d *Line) Mode() Mode { return d.mode }

// ProcessSample pushes x through the line.
func (d *Line) ProcessSample(x float64) float64 {
	return d.ProcessSampleWith(x, nil)
}

// ProcessSampleWith pushes x through the line, passing the accumulated
// sample through sidechain before it is written back. A nil sidechain is
// the identity.
func (d *Line) ProcessSampleWith(x float64, sidechain core.Processor) float64 {
	delayed := d.buffer[d.writePos]

	var out, store float64

	switch d.mode {
	case ModeAccumulate:
		out = delayed + x
		if sidechain != nil {
			out = sidechain.ProcessSample(out)
		}

		store = out * d.feedback
	default:
		store = x + d.feedback*delayed
		if sidechain != nil {
			store = sidechain.ProcessSample(store)
		}

		out = delayed
	}

	d.buffer[d.writePos] = core.FlushDenormals(store)

	d.writePos++
	if d.writePos == len(d.buffer) {
		d.writePos = 0
	}

	return out
}

// ProcessInPlace runs ProcessSample over buf.
func (d *Line) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = d.ProcessSample(x)
	}
}

// ProcessNoTime is the degenerate single-cell variant: the output is the
// input plus one accumulator cell, and the cell grows by output·feedback.
// It bypasses the buffer entirely and does not advance the line.
//
// Deprecated: kept for compatibility with early voices. With feedback near
// 1 the cell integrates its input without bound.
func (d *Line) ProcessNoTime(x float64) float64 {
	out := d.cell + x
	d.cell += out * d.feedback

	return out
}

// Read returns the sample written delay calls ago, for delay in
// [1, Len()]. Other values return 0.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if delay < 1 || delay > size {
		return 0
	}

	return d.buffer[(d.writePos-delay+size)%size]
}

// Reset empties the history.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
	d.cell = 0
}
