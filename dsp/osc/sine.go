package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const twoPi = 2 * math.Pi

// Sine is a phase-accumulating sine oscillator.
//
// The phase advances by frequency/sampleRate every sample and is not
// wrapped, matching the periodicity of sin. Use WrapPhase if very long
// runs make precision a concern.
type Sine struct {
	sampleRate float64
	increment  float64
	frequency  float64
	phase      float64
	wrap       bool
}

// NewSine returns a sine oscillator at frequencyHz.
func NewSine(sampleRate, frequencyHz float64) (*Sine, error) {
	if err := core.ValidateSampleRate("osc", sampleRate); err != nil {
		return nil, err
	}

	s := &Sine{sampleRate: sampleRate, increment: 1 / sampleRate}
	if err := s.SetFrequency(frequencyHz); err != nil {
		return nil, err
	}

	return s, nil
}

// SetFrequency updates the oscillator frequency. Negative values run the
// phase backwards.
func (s *Sine) SetFrequency(frequencyHz float64) error {
	if !core.IsFinite(frequencyHz) {
		return fmt.Errorf("osc: %w: frequency must be finite: %v", core.ErrInvalidConfig, frequencyHz)
	}

	s.frequency = frequencyHz

	return nil
}

// SetSampleRate updates the sample period used to advance phase.
func (s *Sine) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("osc", sampleRate); err != nil {
		return err
	}

	s.sampleRate = sampleRate
	s.increment = 1 / sampleRate

	return nil
}

// SetWrapPhase keeps the phase inside [0, 1) when enabled.
func (s *Sine) SetWrapPhase(enabled bool) { s.wrap = enabled }

// Frequency returns the oscillator frequency in Hz.
func (s *Sine) Frequency() float64 { return s.frequency }

// Phase returns the accumulated phase in cycles.
func (s *Sine) Phase() float64 { return s.phase }

// NextSample advances phase and returns sin(2π·phase).
func (s *Sine) NextSample() float64 {
	s.phase += s.increment * s.frequency
	if s.wrap {
		s.phase -= math.Floor(s.phase)
	}

	return math.Sin(s.phase * twoPi)
}

// Reset returns the phase to zero.
func (s *Sine) Reset() { s.phase = 0 }
