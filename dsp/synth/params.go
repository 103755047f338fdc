package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// ErrUnknownParam is returned for parameter names that do not exist.
var ErrUnknownParam = errors.New("unknown parameter")

// ParamSpec describes one control parameter.
type ParamSpec struct {
	Name    string
	Label   string
	Default float64
	Min     float64
	Max     float64
}

// Parameter names.
const (
	ParamVolume         = "vol"
	ParamPulseWidth     = "pw"
	ParamResonance      = "f_reso"
	ParamFilterOctave   = "f_octave"
	ParamOctave         = "octave"
	ParamHarmonicOffset = "hoffset"
	ParamHarmonicCount  = "hcount"
	ParamSpectrum       = "spectrum"
	ParamSpectrumWidth  = "width"
)

var specs = [...]ParamSpec{
	{Name: ParamVolume, Label: "volume", Default: 0.5, Min: 0, Max: 1},
	{Name: ParamPulseWidth, Label: "pulse width", Default: 0.5, Min: 0, Max: 1},
	{Name: ParamResonance, Label: "resonance", Default: 0.5, Min: 0, Max: 5},
	{Name: ParamFilterOctave, Label: "cutoff octave", Default: 5, Min: 0, Max: 9},
	{Name: ParamOctave, Label: "octave", Default: 5, Min: 0, Max: 9},
	{Name: ParamHarmonicOffset, Label: "harmonic offset", Default: -1, Min: -5, Max: 5},
	{Name: ParamHarmonicCount, Label: "harmonics", Default: 5, Min: 1, Max: 32},
	{Name: ParamSpectrum, Label: "spectrum", Default: 0.5, Min: 0, Max: 1},
	{Name: ParamSpectrumWidth, Label: "spectrum width", Default: 1, Min: 0, Max: 10},
}

// Specs returns the descriptors of every parameter in display order.
func Specs() []ParamSpec {
	out := make([]ParamSpec, len(specs))
	copy(out, specs[:])

	return out
}

// Lookup returns the descriptor for name.
func Lookup(name string) (ParamSpec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}

	return ParamSpec{}, false
}

// Clamp limits v to [Min, Max]. NaN maps to Default.
func (s ParamSpec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}

	return core.Clamp(v, s.Min, s.Max)
}

// Params is one snapshot of every control parameter.
type Params struct {
	Volume         float64
	PulseWidth     float64
	Resonance      float64
	FilterOctave   float64
	Octave         float64
	HarmonicOffset float64
	HarmonicCount  float64
	SpectrumCenter float64
	SpectrumWidth  float64
}

// DefaultParams returns every parameter at its default.
func DefaultParams() Params {
	var p Params
	for _, s := range specs {
		*p.ref(s.Name) = s.Default
	}

	return p
}

func (p *Params) ref(name string) *float64 {
	switch name {
	case ParamVolume:
		return &p.Volume
	case ParamPulseWidth:
		return &p.PulseWidth
	case ParamResonance:
		return &p.Resonance
	case ParamFilterOctave:
		return &p.FilterOctave
	case ParamOctave:
		return &p.Octave
	case ParamHarmonicOffset:
		return &p.HarmonicOffset
	case ParamHarmonicCount:
		return &p.HarmonicCount
	case ParamSpectrum:
		return &p.SpectrumCenter
	case ParamSpectrumWidth:
		return &p.SpectrumWidth
	default:
		return nil
	}
}

// Get returns the named parameter.
func (p Params) Get(name string) (float64, error) {
	r := p.ref(name)
	if r == nil {
		return 0, fmt.Errorf("synth: %w: %q", ErrUnknownParam, name)
	}

	return *r, nil
}

// Set assigns the named parameter, clamped to its range. Out-of-range
// values are never rejected; only unknown names are.
func (p *Params) Set(name string, v float64) error {
	r := p.ref(name)
	if r == nil {
		return fmt.Errorf("synth: %w: %q", ErrUnknownParam, name)
	}

	spec, _ := Lookup(name)
	*r = spec.Clamp(v)

	return nil
}

// Clamped returns p with every field clamped to its declared range.
func (p Params) Clamped() Params {
	out := p
	for _, s := range specs {
		r := out.ref(s.Name)
		*r = s.Clamp(*r)
	}

	return out
}
