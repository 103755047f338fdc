package harmonic

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// MaxHarmonics is the number of harmonic slots in a Bank.
const MaxHarmonics = 32

// DefaultAmplitude is the master amplitude when none is given.
const DefaultAmplitude = 0.5

// Window is the raised-cosine spectral window: 0.5 + 0.5·cos(2πt) for t in
// [-1, 1] and 0 outside.
func Window(t float64) float64 {
	if !(t >= -1 && t <= 1) {
		return 0
	}

	return math.Cos(t*2*math.Pi)*0.5 + 0.5
}

// CountFromControl maps a continuous control value to a harmonic count:
// rounded to the nearest integer and clamped to [1, MaxHarmonics].
func CountFromControl(v float64) int {
	if math.IsNaN(v) {
		return 1
	}

	return int(core.Clamp(math.Round(v), 1, MaxHarmonics))
}

// Settings is one block's worth of bank parameters.
type Settings struct {
	BaseHz float64 // fundamental frequency
	Count  int     // active harmonics, [1, MaxHarmonics]
	Offset float64 // harmonic index offset
	Center float64 // spectral center
	Width  float64 // spectral width, >= 0
}

// Option mutates bank construction parameters.
type Option func(*Bank) error

// WithAmplitude sets the master amplitude. Default is DefaultAmplitude.
func WithAmplitude(a float64) Option {
	return func(b *Bank) error {
		return b.SetAmplitude(a)
	}
}

// WithSettings sets the initial parameters.
func WithSettings(s Settings) Option {
	return func(b *Bank) error {
		return b.Configure(s)
	}
}

// Bank is an additive harmonic oscillator.
type Bank struct {
	sampleRate float64
	increment  float64
	amp        float64
	settings   Settings

	phase [MaxHarmonics]float64
	amps  [MaxHarmonics]float64
}

// New returns a bank with one harmonic at 440 Hz, offset -1, flat spectrum.
func New(sampleRate float64, opts ...Option) (*Bank, error) {
	if err := core.ValidateSampleRate("harmonic", sampleRate); err != nil {
		return nil, err
	}

	b := &Bank{
		sampleRate: sampleRate,
		increment:  1 / sampleRate,
		amp:        DefaultAmplitude,
	}

	if err := b.Configure(Settings{BaseHz: 440, Count: 1, Offset: -1, Width: 1}); err != nil {
		return nil, err
	}

	for _, o := range opts {
		if o == nil {
			continue
		}

		if err := o(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Configure validates s, stores it and recomputes the amplitude envelope.
// Phases are left untouched. On error the bank is unchanged.
func (b *Bank) Configure(s Settings) error {
	if !core.IsFinite(s.BaseHz) || s.BaseHz < 0 {
		return fmt.Errorf("harmonic: %w: base frequency must be >= 0 and finite: %v", core.ErrInvalidConfig, s.BaseHz)
	}

	if s.Count < 1 || s.Count > MaxHarmonics {
		return fmt.Errorf("harmonic: %w: count must be in [1, %d]: %d", core.ErrInvalidConfig, MaxHarmonics, s.Count)
	}

	if !core.IsFinite(s.Offset) {
		return fmt.Errorf("harmonic: %w: offset must be finite: %v", core.ErrInvalidConfig, s.Offset)
	}

	if !core.IsFinite(s.Center) {
		return fmt.Errorf("harmonic: %w: spectral center must be finite: %v", core.ErrInvalidConfig, s.Center)
	}

	if !core.IsFinite(s.Width) || s.Width < 0 {
		return fmt.Errorf("harmonic: %w: spectral width must be >= 0 and finite: %v", core.ErrInvalidConfig, s.Width)
	}

	b.settings = s
	b.updateEnvelope()

	return nil
}

// updateEnvelope rewrites amps[0:Count] from the spectral window.
func (b *Bank) updateEnvelope() {
	s := b.settings
	den := float64(s.Count) * s.Width

	for i := 0; i < s.Count; i++ {
		num := float64(i) * s.Center

		switch {
		case num == 0:
			b.amps[i] = Window(0)
		case den == 0:
			b.amps[i] = 0
		default:
			b.amps[i] = Window(num / den)
		}
	}
}

// SetCount changes the number of active harmonics.
func (b *Bank) SetCount(n int) error {
	s := b.settings
	s.Count = n

	return b.Configure(s)
}

// SetBaseFrequency changes the fundamental.
func (b *Bank) SetBaseFrequency(hz float64) error {
	s := b.settings
	s.BaseHz = hz

	return b.Configure(s)
}

// SetOffset changes the harmonic index offset.
func (b *Bank) SetOffset(offset float64) error {
	s := b.settings
	s.Offset = offset

	return b.Configure(s)
}

// SetSpectrum changes the spectral window center and width.
func (b *Bank) SetSpectrum(center, width float64) error {
	s := b.settings
	s.Center = center
	s.Width = width

	return b.Configure(s)
}

// SetAmplitude sets the master amplitude.
func (b *Bank) SetAmplitude(a float64) error {
	if !core.IsFinite(a) {
		return fmt.Errorf("harmonic: %w: amplitude must be finite: %v", core.ErrInvalidConfig, a)
	}

	b.amp = a

	return nil
}

// SetSampleRate updates the per-sample phase increment.
func (b *Bank) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("harmonic", sampleRate); err != nil {
		return err
	}

	b.sampleRate = sampleRate
	b.increment = 1 / sampleRate

	return nil
}

// NextSample advances every active harmonic by one sample and returns the
// amplitude-weighted sum of their sines, scaled by amplitude/count.
func (b *Bank) NextSample() float64 {
	s := &b.settings
	step := b.increment * s.BaseHz

	var sum float64

	for i := 0; i < s.Count; i++ {
		p := b.phase[i] + step*(float64(i)-s.Offset)
		if p >= 1 || p < 0 {
			p -= math.Floor(p)
		}

		b.phase[i] = p
		sum += math.Sin(p*2*math.Pi) * b.amps[i]
	}

	return sum * b.amp / float64(s.Count)
}

// Fill writes successive samples into buf.
func (b *Bank) Fill(buf []float64) {
	for i := range buf {
		buf[i] = b.NextSample()
	}
}

// Reset zeroes every phase accumulator, active or parked.
func (b *Bank) Reset() {
	clear(b.phase[:])
}

// Settings returns the active parameters.
func (b *Bank) Settings() Settings { return b.settings }

// Count returns the number of active harmonics.
func (b *Bank) Count() int { return b.settings.Count }

// Amplitude returns the master amplitude.
func (b *Bank) Amplitude() float64 { return b.amp }

// SampleRate returns the sample rate in Hz.
func (b *Bank) SampleRate() float64 { return b.sampleRate }

// Phase returns the phase of slot i in cycles, wrapped to the unit interval.
func (b *Bank) Phase(i int) float64 { return b.phase[i] }

// Envelope returns the spectral amplitude of active harmonic i.
func (b *Bank) Envelope(i int) float64 { return b.amps[i] }
