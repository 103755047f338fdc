package synth

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/moog"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

const (
	// PreviewSampleRate is the graph rate of the knob preview.
	PreviewSampleRate = 441.0
	// PreviewLength is the number of samples in a knob preview.
	PreviewLength = 1000
)

// PreviewParams are the controls of the knob preview.
type PreviewParams struct {
	PulseWidth float64 // [0, 1]
	Volume     float64 // [0, 1]
	Resonance  float64 // [-1, 1]
	Octave     float64 // [-5, 3]
}

// DefaultPreviewParams returns the preview controls at their defaults.
func DefaultPreviewParams() PreviewParams {
	return PreviewParams{PulseWidth: 0.5, Volume: 0.5, Resonance: 0, Octave: 1}
}

func (pp PreviewParams) clamped() PreviewParams {
	return PreviewParams{
		PulseWidth: core.Clamp(pp.PulseWidth, 0, 1),
		Volume:     core.Clamp(pp.Volume, 0, 1),
		Resonance:  core.Clamp(pp.Resonance, -1, 1),
		Octave:     core.Clamp(pp.Octave, -5, 3),
	}
}

// RenderPreview renders the waveform shown next to the knobs: a 1 Hz pulse
// of the given width and volume through a freshly built ladder at
// PreviewSampleRate. dst receives len(dst) samples; PreviewLength is the
// customary size.
func RenderPreview(dst []float64, pp PreviewParams) error {
	pp = pp.clamped()

	pulse, err := osc.NewPulse(PreviewSampleRate, 1)
	if err != nil {
		return err
	}

	if err := pulse.SetWidth(pp.PulseWidth); err != nil {
		return err
	}

	if err := pulse.SetAmplitude(pp.Volume); err != nil {
		return err
	}

	ladder, err := moog.New(PreviewSampleRate,
		moog.WithCutoffHz(core.OctaveToHz(BaseHz, pp.Octave)),
		moog.WithResonance(pp.Resonance),
	)
	if err != nil {
		return fmt.Errorf("synth: preview: %w", err)
	}

	for i := range dst {
		dst[i] = ladder.ProcessSample(pulse.NextSample())
	}

	return nil
}
