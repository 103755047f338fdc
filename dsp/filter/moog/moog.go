package moog

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	defaultCutoffHz  = 1000.0
	defaultResonance = 0.0

	inputScale    = 0.35013
	crossFeed     = 0.3
	feedbackShape = 0.15

	twoPi = 2 * math.Pi
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cutoffHz         float64
	resonance        float64
	saturate         bool
	resetOnConfigure bool
}

func defaultConfig() config {
	return config{
		cutoffHz:  defaultCutoffHz,
		resonance: defaultResonance,
	}
}

// WithCutoffHz sets the initial cutoff in Hz. Negative values clamp to 0.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(cutoffHz) {
			return fmt.Errorf("moog: %w: cutoff must be finite: %v", core.ErrInvalidConfig, cutoffHz)
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithResonance sets the initial feedback resonance.
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(resonance) {
			return fmt.Errorf("moog: %w: resonance must be finite: %v", core.ErrInvalidConfig, resonance)
		}

		cfg.resonance = resonance

		return nil
	}
}

// WithSaturation makes ProcessSample hard-clip its output to [-1, 1].
func WithSaturation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.saturate = enabled
		return nil
	}
}

// WithResetOnConfigure clears the ladder history on every Configure call.
// This mirrors one-shot preview renders where each parameter change starts
// from silence; streaming use should leave it off.
func WithResetOnConfigure(enabled bool) Option {
	return func(cfg *config) error {
		cfg.resetOnConfigure = enabled
		return nil
	}
}

// State holds the previous input and output of each of the four stages.
type State struct {
	In  [4]float64
	Out [4]float64
}

// Coefficients are the scalars derived from cutoff and resonance.
type Coefficients struct {
	// F is the normalized angular frequency in [0, π].
	F float64
	// AF is the one-pole feedback coefficient 1 - F.
	AF float64
	// SqF is F².
	SqF float64
	// Feedback is resonance·(1 - 0.15·SqF).
	Feedback float64
}

// Filter is a four-pole ladder low-pass.
type Filter struct {
	sampleRate float64

	cutoffHz         float64
	resonance        float64
	saturate         bool
	resetOnConfigure bool

	coeffs Coefficients
	gain   float64

	state State
}

// New constructs a ladder filter.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if err := core.ValidateSampleRate("moog", sampleRate); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate:       sampleRate,
		saturate:         cfg.saturate,
		resetOnConfigure: cfg.resetOnConfigure,
	}

	if err := f.Configure(cfg.cutoffHz, cfg.resonance); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the cutoff after clamping.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the feedback resonance.
func (f *Filter) Resonance() float64 { return f.resonance }

// Saturate reports whether ProcessSample clips its output.
func (f *Filter) Saturate() bool { return f.saturate }

// Coefficients returns the derived coefficient set.
func (f *Filter) Coefficients() Coefficients { return f.coeffs }

// SetSaturate enables or disables output clipping for ProcessSample.
func (f *Filter) SetSaturate(enabled bool) { f.saturate = enabled }

// Configure recomputes all derived coefficients from cutoff and resonance.
//
// The cutoff is clamped to [0, Nyquist] so the normalized frequency stays
// in [0, π]. Calling Configure twice with the same arguments leaves the
// filter in the same state. Only non-finite arguments are rejected; on
// error the previous configuration is kept.
func (f *Filter) Configure(cutoffHz, resonance float64) error {
	if !core.IsFinite(cutoffHz) {
		return fmt.Errorf("moog: %w: cutoff must be finite: %v", core.ErrInvalidConfig, cutoffHz)
	}

	if !core.IsFinite(resonance) {
		return fmt.Errorf("moog: %w: resonance must be finite: %v", core.ErrInvalidConfig, resonance)
	}

	f.cutoffHz = core.Clamp(cutoffHz, 0, 0.5*f.sampleRate)
	f.resonance = resonance
	f.coeffs = computeCoefficients(f.cutoffHz, f.resonance, f.sampleRate)
	f.gain = inputScale * f.coeffs.SqF * f.coeffs.SqF

	if f.resetOnConfigure {
		f.Reset()
	}

	return nil
}

// SetCutoffHz updates the cutoff and recomputes the resonance feedback.
func (f *Filter) SetCutoffHz(cutoffHz float64) error {
	return f.Configure(cutoffHz, f.resonance)
}

// SetResonance updates the resonance feedback.
func (f *Filter) SetResonance(resonance float64) error {
	return f.Configure(f.cutoffHz, resonance)
}

// SetSampleRate updates the sample rate and rebuilds coefficients.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("moog", sampleRate); err != nil {
		return err
	}

	f.sampleRate = sampleRate

	return f.Configure(f.cutoffHz, f.resonance)
}

// Reset clears all eight history cells.
func (f *Filter) Reset() {
	f.state = State{}
}

// State returns a copy of the current ladder state.
func (f *Filter) State() State {
	return f.state
}

// SetState restores an externally saved ladder state.
func (f *Filter) SetState(state State) error {
	for i := range 4 {
		if !core.IsFinite(state.In[i]) || !core.IsFinite(state.Out[i]) {
			return fmt.Errorf("moog: %w: state contains NaN or Inf", core.ErrInvalidConfig)
		}
	}

	f.state = state

	return nil
}

// ProcessSample filters one sample, clipping when saturation is enabled.
func (f *Filter) ProcessSample(x float64) float64 {
	return f.Process(x, f.saturate)
}

// Process filters one sample; saturate hard-clips the output to [-1, 1].
func (f *Filter) Process(x float64, saturate bool) float64 {
	if !core.IsFinite(x) {
		x = 0
	}

	s := &f.state
	c := &f.coeffs

	x -= s.Out[3] * c.Feedback
	x *= f.gain

	s.Out[0] = core.FlushDenormals(x + crossFeed*s.In[0] + c.AF*s.Out[0])
	s.In[0] = x
	s.Out[1] = core.FlushDenormals(s.Out[0] + crossFeed*s.In[1] + c.AF*s.Out[1])
	s.In[1] = s.Out[0]
	s.Out[2] = core.FlushDenormals(s.Out[1] + crossFeed*s.In[2] + c.AF*s.Out[2])
	s.In[2] = s.Out[1]
	s.Out[3] = core.FlushDenormals(s.Out[2] + crossFeed*s.In[3] + c.AF*s.Out[3])
	s.In[3] = s.Out[2]

	out := s.Out[3]
	if !core.IsFinite(out) {
		// Runaway feedback: restart from silence rather than emit Inf/NaN.
		f.state = State{}
		return 0
	}

	if saturate {
		return core.Clip(out)
	}

	return out
}

// ProcessInPlace processes a mono buffer in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// ProcessTo processes src into dst. Both slices must have the same length.
func (f *Filter) ProcessTo(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

func computeCoefficients(cutoffHz, resonance, sampleRate float64) Coefficients {
	fn := (cutoffHz / sampleRate) * twoPi
	sqf := fn * fn

	return Coefficients{
		F:        fn,
		AF:       1 - fn,
		SqF:      sqf,
		Feedback: resonance * (1 - feedbackShape*sqf),
	}
}
