package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Pulse is a naive (non band-limited) rectangular oscillator. The output
// is -amplitude during the first Width fraction of each cycle and
// +amplitude for the rest.
type Pulse struct {
	increment float64
	frequency float64
	width     float64
	amplitude float64
	phase     float64
}

// NewPulse returns a pulse oscillator with 50% width and unit amplitude.
func NewPulse(sampleRate, frequencyHz float64) (*Pulse, error) {
	if err := core.ValidateSampleRate("osc", sampleRate); err != nil {
		return nil, err
	}

	p := &Pulse{increment: 1 / sampleRate, width: 0.5, amplitude: 1}
	if err := p.SetFrequency(frequencyHz); err != nil {
		return nil, err
	}

	return p, nil
}

// SetFrequency updates the oscillator frequency.
func (p *Pulse) SetFrequency(frequencyHz float64) error {
	if !core.IsFinite(frequencyHz) || frequencyHz < 0 {
		return fmt.Errorf("osc: %w: pulse frequency must be >= 0 and finite: %v", core.ErrInvalidConfig, frequencyHz)
	}

	p.frequency = frequencyHz

	return nil
}

// SetSampleRate updates the sample period used to advance phase.
func (p *Pulse) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("osc", sampleRate); err != nil {
		return err
	}

	p.increment = 1 / sampleRate

	return nil
}

// SetWidth sets the duty cycle in [0, 1].
func (p *Pulse) SetWidth(width float64) error {
	if err := core.ValidateRange("osc", "pulse width", width, 0, 1); err != nil {
		return err
	}

	p.width = width

	return nil
}

// SetAmplitude sets the peak output level.
func (p *Pulse) SetAmplitude(amplitude float64) error {
	if !core.IsFinite(amplitude) {
		return fmt.Errorf("osc: %w: pulse amplitude must be finite: %v", core.ErrInvalidConfig, amplitude)
	}

	p.amplitude = amplitude

	return nil
}

// Width returns the duty cycle.
func (p *Pulse) Width() float64 { return p.width }

// NextSample returns the current level and advances the phase.
func (p *Pulse) NextSample() float64 {
	out := p.amplitude
	if p.phase < p.width {
		out = -p.amplitude
	}

	p.phase += p.increment * p.frequency
	p.phase -= math.Floor(p.phase)

	return out
}

// Reset returns the phase to the start of a cycle.
func (p *Pulse) Reset() { p.phase = 0 }
