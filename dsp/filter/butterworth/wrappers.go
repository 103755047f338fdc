package butterworth

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	// PassTransmission is the pass-band transmission used by the wrappers.
	PassTransmission = 0.95
	// StopTransmission is the stop-band transmission used by the wrappers.
	StopTransmission = 0.05
	// DefaultSharpness is the wrapper sharpness when none is given.
	DefaultSharpness = 1.2
)

func validateControl(cutoffHz, gain, sharpness float64) error {
	if !core.IsFinite(cutoffHz) || cutoffHz <= 0 {
		return fmt.Errorf("butterworth: %w: cutoff must be > 0 and finite: %v", core.ErrInvalidConfig, cutoffHz)
	}

	if !core.IsFinite(gain) {
		return fmt.Errorf("butterworth: %w: gain must be finite: %v", core.ErrInvalidConfig, gain)
	}

	if !core.IsFinite(sharpness) || sharpness <= 0 {
		return fmt.Errorf("butterworth: %w: sharpness must be > 0 and finite: %v", core.ErrInvalidConfig, sharpness)
	}

	return nil
}

// validateHighpassControl additionally keeps the stop edge above 0 Hz.
func validateHighpassControl(cutoffHz, gain, sharpness float64) error {
	if err := validateControl(cutoffHz, gain, sharpness); err != nil {
		return err
	}

	if sharpness <= 1 {
		return fmt.Errorf("butterworth: %w: highpass sharpness must be > 1: %v", core.ErrInvalidConfig, sharpness)
	}

	return nil
}

// HighpassSpec maps a cutoff and sharpness to a highpass specification.
// The stop edge sits cutoff/sharpness below the cutoff.
func HighpassSpec(cutoffHz, sharpness float64) Spec {
	return Spec{
		PassHz: cutoffHz,
		StopHz: cutoffHz - cutoffHz/sharpness,
		Pass:   PassTransmission,
		Stop:   StopTransmission,
	}
}

// LowpassSpec maps a cutoff and sharpness to a lowpass specification.
// The stop edge sits cutoff/sharpness above the cutoff, mirroring
// HighpassSpec so that the design classifies as lowpass.
func LowpassSpec(cutoffHz, sharpness float64) Spec {
	return Spec{
		PassHz: cutoffHz,
		StopHz: cutoffHz + cutoffHz/sharpness,
		Pass:   PassTransmission,
		Stop:   StopTransmission,
	}
}

// MaxLowpassCutoff returns the largest cutoff whose lowpass stop edge
// still lies below Nyquist.
func MaxLowpassCutoff(sampleRate, sharpness float64) float64 {
	return 0.4999 * sampleRate / (1 + 1/sharpness)
}

// Lowpass is a Butterworth lowpass driven by cutoff, gain and sharpness.
type Lowpass struct {
	filter    *Filter
	cutoffHz  float64
	sharpness float64
}

// NewLowpass returns a lowpass at cutoffHz.
func NewLowpass(sampleRate, cutoffHz, gain, sharpness float64, opts ...Option) (*Lowpass, error) {
	if err := validateControl(cutoffHz, gain, sharpness); err != nil {
		return nil, err
	}

	f, err := New(sampleRate, LowpassSpec(cutoffHz, sharpness), append(opts[:len(opts):len(opts)], WithGain(gain))...)
	if err != nil {
		return nil, err
	}

	return &Lowpass{filter: f, cutoffHz: cutoffHz, sharpness: sharpness}, nil
}

// Set redesigns the filter. On error the previous design stays active.
func (l *Lowpass) Set(cutoffHz, gain, sharpness float64) error {
	if err := validateControl(cutoffHz, gain, sharpness); err != nil {
		return err
	}

	if err := l.filter.SetSpec(LowpassSpec(cutoffHz, sharpness)); err != nil {
		return err
	}

	l.cutoffHz = cutoffHz
	l.sharpness = sharpness

	return l.filter.SetGain(gain)
}

// ProcessSample filters one sample.
func (l *Lowpass) ProcessSample(x float64) float64 { return l.filter.ProcessSample(x) }

// Reset clears the filter history.
func (l *Lowpass) Reset() { l.filter.Reset() }

// CutoffHz returns the configured cutoff.
func (l *Lowpass) CutoffHz() float64 { return l.cutoffHz }

// Sharpness returns the configured sharpness.
func (l *Lowpass) Sharpness() float64 { return l.sharpness }

// Filter returns the underlying designer-backed filter.
func (l *Lowpass) Filter() *Filter { return l.filter }

// Highpass is a Butterworth highpass driven by cutoff, gain and sharpness.
type Highpass struct {
	filter    *Filter
	cutoffHz  float64
	sharpness float64
}

// NewHighpass returns a highpass at cutoffHz.
func NewHighpass(sampleRate, cutoffHz, gain, sharpness float64, opts ...Option) (*Highpass, error) {
	if err := validateHighpassControl(cutoffHz, gain, sharpness); err != nil {
		return nil, err
	}

	f, err := New(sampleRate, HighpassSpec(cutoffHz, sharpness), append(opts[:len(opts):len(opts)], WithGain(gain))...)
	if err != nil {
		return nil, err
	}

	return &Highpass{filter: f, cutoffHz: cutoffHz, sharpness: sharpness}, nil
}

// Set redesigns the filter. On error the previous design stays active.
func (h *Highpass) Set(cutoffHz, gain, sharpness float64) error {
	if err := validateHighpassControl(cutoffHz, gain, sharpness); err != nil {
		return err
	}

	if err := h.filter.SetSpec(HighpassSpec(cutoffHz, sharpness)); err != nil {
		return err
	}

	h.cutoffHz = cutoffHz
	h.sharpness = sharpness

	return h.filter.SetGain(gain)
}

// ProcessSample filters one sample.
func (h *Highpass) ProcessSample(x float64) float64 { return h.filter.ProcessSample(x) }

// Reset clears the filter history.
func (h *Highpass) Reset() { h.filter.Reset() }

// CutoffHz returns the configured cutoff.
func (h *Highpass) CutoffHz() float64 { return h.cutoffHz }

// Sharpness returns the configured sharpness.
func (h *Highpass) Sharpness() float64 { return h.sharpness }

// Filter returns the underlying designer-backed filter.
func (h *Highpass) Filter() *Filter { return h.filter }

// Bandpass runs a highpass into a lowpass.
type Bandpass struct {
	hp *Highpass
	lp *Lowpass
}

// NewBandpass returns a band-pass between hpHz and lpHz using sharpness
// for both legs.
func NewBandpass(sampleRate, hpHz, lpHz, sharpness float64, opts ...Option) (*Bandpass, error) {
	hp, err := NewHighpass(sampleRate, hpHz, 1, sharpness, opts...)
	if err != nil {
		return nil, err
	}

	lp, err := NewLowpass(sampleRate, lpHz, 1, sharpness, opts...)
	if err != nil {
		return nil, err
	}

	return &Bandpass{hp: hp, lp: lp}, nil
}

// SetFreqs reconfigures both legs at the current sharpness.
func (b *Bandpass) SetFreqs(hpHz, lpHz float64) error {
	return b.Set(hpHz, lpHz, b.hp.sharpness)
}

// Set reconfigures both legs. If the lowpass leg fails the highpass leg is
// rolled back, so either both change or neither does.
func (b *Bandpass) Set(hpHz, lpHz, sharpness float64) error {
	prevHz := b.hp.cutoffHz
	prevSharpness := b.hp.sharpness

	if err := b.hp.Set(hpHz, 1, sharpness); err != nil {
		return err
	}

	if err := b.lp.Set(lpHz, 1, sharpness); err != nil {
		_ = b.hp.Set(prevHz, 1, prevSharpness)
		return err
	}

	return nil
}

// ProcessSample filters one sample.
func (b *Bandpass) ProcessSample(x float64) float64 {
	return b.lp.ProcessSample(b.hp.ProcessSample(x))
}

// Reset clears both legs.
func (b *Bandpass) Reset() {
	b.hp.Reset()
	b.lp.Reset()
}

// Sharpness returns the sharpness shared by both legs.
func (b *Bandpass) Sharpness() float64 { return b.hp.sharpness }

// HighpassHz returns the lower band edge.
func (b *Bandpass) HighpassHz() float64 { return b.hp.cutoffHz }

// LowpassHz returns the upper band edge.
func (b *Bandpass) LowpassHz() float64 { return b.lp.cutoffHz }
