package butterworth

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

// Option mutates filter construction parameters.
type Option func(*config) error

type config struct {
	topology Topology
	gain     float64
}

func defaultConfig() config {
	return config{topology: TopologyCascade, gain: 1}
}

// WithTopology selects the section layout. Default is TopologyCascade.
func WithTopology(t Topology) Option {
	return func(cfg *config) error {
		if t != TopologyCascade && t != TopologyLegacySingle {
			return fmt.Errorf("butterworth: %w: unknown topology: %d", core.ErrInvalidConfig, int(t))
		}

		cfg.topology = t

		return nil
	}
}

// WithGain sets the linear input gain. Default is 1.
func WithGain(g float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(g) {
			return fmt.Errorf("butterworth: %w: gain must be finite: %v", core.ErrInvalidConfig, g)
		}

		cfg.gain = g

		return nil
	}
}

// Filter is a runtime Butterworth filter.
//
// Section storage for MaxOrder is reserved at construction. Configure only
// rewrites coefficients; sections that a longer design activates start
// from an explicit reset.
type Filter struct {
	sampleRate float64
	topology   Topology
	spec       Spec
	design     Design
	chain      *biquad.Chain
}

// New designs a filter for spec at sampleRate.
func New(sampleRate float64, spec Spec, opts ...Option) (*Filter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		if o == nil {
			continue
		}

		if err := o(&cfg); err != nil {
			return nil, err
		}
	}

	d, err := NewDesign(spec, sampleRate, cfg.topology)
	if err != nil {
		return nil, err
	}

	f := &Filter{
		sampleRate: sampleRate,
		topology:   cfg.topology,
		spec:       spec,
		design:     d,
		chain:      biquad.NewChain(nil, biquad.WithCapacity(maxSections), biquad.WithGain(cfg.gain)),
	}
	f.chain.UpdateCoefficients(f.design.Sections(), cfg.gain)

	return f, nil
}

// Configure redesigns the filter for new band edges and transmissions.
// On error the previous design stays active.
func (f *Filter) Configure(fpass, fstop, hpass, hstop float64) error {
	return f.SetSpec(Spec{PassHz: fpass, StopHz: fstop, Pass: hpass, Stop: hstop})
}

// SetSpec is Configure with a Spec value.
func (f *Filter) SetSpec(spec Spec) error {
	d, err := NewDesign(spec, f.sampleRate, f.topology)
	if err != nil {
		return err
	}

	f.spec = spec
	f.apply(d)

	return nil
}

// SetTopology switches the section layout and redesigns.
func (f *Filter) SetTopology(t Topology) error {
	d, err := NewDesign(f.spec, f.sampleRate, t)
	if err != nil {
		return err
	}

	f.topology = t
	f.apply(d)

	return nil
}

// SetSampleRate updates the sample rate and redesigns.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	d, err := NewDesign(f.spec, sampleRate, f.topology)
	if err != nil {
		return err
	}

	f.sampleRate = sampleRate
	f.apply(d)

	return nil
}

// SetGain sets the linear input gain.
func (f *Filter) SetGain(g float64) error {
	if !core.IsFinite(g) {
		return fmt.Errorf("butterworth: %w: gain must be finite: %v", core.ErrInvalidConfig, g)
	}

	f.chain.SetGain(g)

	return nil
}

func (f *Filter) apply(d Design) {
	f.design = d
	f.chain.UpdateCoefficients(f.design.Sections(), f.chain.Gain())
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	return f.chain.ProcessSample(x)
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	f.chain.ProcessBlock(buf)
}

// Reset clears the history of every section.
func (f *Filter) Reset() {
	f.chain.Reset()
}

// Design returns the active design.
func (f *Filter) Design() Design { return f.design }

// Spec returns the active specification.
func (f *Filter) Spec() Spec { return f.spec }

// Topology returns the section layout.
func (f *Filter) Topology() Topology { return f.topology }

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Gain returns the linear input gain.
func (f *Filter) Gain() float64 { return f.chain.Gain() }

// Order returns the order of the active design.
func (f *Filter) Order() int { return f.design.Order }

// NumSections returns the number of biquad sections in use.
func (f *Filter) NumSections() int { return f.chain.NumSections() }

// MagnitudeDB returns the response of the active sections at freqHz.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return f.chain.MagnitudeDB(freqHz, f.sampleRate)
}

// State returns the history of every active section.
func (f *Filter) State() []biquad.State { return f.chain.State() }

// SetState restores section histories saved with State.
func (f *Filter) SetState(states []biquad.State) { f.chain.SetState(states) }
