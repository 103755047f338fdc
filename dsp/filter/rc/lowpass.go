package rc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Lowpass is a single-pole RC lowpass filter.
type Lowpass struct {
	sampleRate float64
	cutoffHz   float64
	alpha      float64
	last       float64
}

// NewLowpass returns an RC lowpass at cutoffHz.
func NewLowpass(sampleRate, cutoffHz float64) (*Lowpass, error) {
	if err := core.ValidateSampleRate("rc", sampleRate); err != nil {
		return nil, err
	}

	l := &Lowpass{sampleRate: sampleRate}
	if err := l.SetCutoff(cutoffHz); err != nil {
		return nil, err
	}

	return l, nil
}

// SetCutoff recomputes rc and alpha from the sample period.
//
// A cutoff of 0 Hz freezes the output at its last value (alpha == 0).
func (l *Lowpass) SetCutoff(cutoffHz float64) error {
	if !core.IsFinite(cutoffHz) || cutoffHz < 0 {
		return fmt.Errorf("rc: %w: cutoff must be >= 0 and finite: %v", core.ErrInvalidConfig, cutoffHz)
	}

	l.cutoffHz = cutoffHz
	l.alpha = alphaFor(cutoffHz, l.sampleRate)

	return nil
}

// SetSampleRate updates the sample period and recomputes alpha.
func (l *Lowpass) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("rc", sampleRate); err != nil {
		return err
	}

	l.sampleRate = sampleRate
	l.alpha = alphaFor(l.cutoffHz, sampleRate)

	return nil
}

// CutoffHz returns the configured cutoff.
func (l *Lowpass) CutoffHz() float64 { return l.cutoffHz }

// Alpha returns the smoothing coefficient in [0, 1).
func (l *Lowpass) Alpha() float64 { return l.alpha }

// ProcessSample applies last += alpha·(x - last).
func (l *Lowpass) ProcessSample(x float64) float64 {
	l.last += l.alpha * (x - l.last)
	return l.last
}

// ProcessInPlace filters buf in place.
func (l *Lowpass) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}

// Reset zeroes the output memory.
func (l *Lowpass) Reset() { l.last = 0 }

func alphaFor(cutoffHz, sampleRate float64) float64 {
	if cutoffHz <= 0 {
		return 0
	}

	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1 / sampleRate

	return dt / (rc + dt)
}
