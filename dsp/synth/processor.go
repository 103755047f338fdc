package synth

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/filter/butterworth"
	"github.com/cwbudde/algo-synth/dsp/filter/moog"
	"github.com/cwbudde/algo-synth/dsp/filter/onepole"
	"github.com/cwbudde/algo-synth/dsp/filter/rc"
	"github.com/cwbudde/algo-synth/dsp/harmonic"
	"github.com/cwbudde/algo-synth/dsp/osc"
	"github.com/cwbudde/algo-vecmath"
)

// BaseHz is the frequency of octave 0.
const BaseHz = 11.0

const (
	defaultDither       = 0.01
	defaultDitherSeed   = 1
	defaultEchoFeedback = 0.5
)

// Source selects the signal generator.
type Source int

const (
	// SourceHarmonics is the additive harmonic bank.
	SourceHarmonics Source = iota
	// SourcePulse is a pulse wave whose width follows the pw parameter.
	SourcePulse
	// SourceSine is a plain sine at the oscillator frequency.
	SourceSine
)

func (s Source) String() string {
	switch s {
	case SourceHarmonics:
		return "harmonics"
	case SourcePulse:
		return "pulse"
	case SourceSine:
		return "sine"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// FilterMode selects the filter stage.
type FilterMode int

const (
	// FilterMoog is the 4-pole ladder driven by cutoff and resonance.
	FilterMoog FilterMode = iota
	// FilterButterworthLowpass is a Butterworth lowpass at the cutoff.
	FilterButterworthLowpass
	// FilterButterworthHighpass is a Butterworth highpass at the cutoff.
	FilterButterworthHighpass
	// FilterButterworthBandpass spans one octave either side of the cutoff.
	FilterButterworthBandpass
	// FilterRCBandpass is the RC band-pass over the same band.
	FilterRCBandpass
	// FilterNone passes the source through.
	FilterNone
)

func (m FilterMode) String() string {
	switch m {
	case FilterMoog:
		return "moog"
	case FilterButterworthLowpass:
		return "butterworth-lowpass"
	case FilterButterworthHighpass:
		return "butterworth-highpass"
	case FilterButterworthBandpass:
		return "butterworth-bandpass"
	case FilterRCBandpass:
		return "rc-bandpass"
	case FilterNone:
		return "none"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
}

// ParseSource returns the source whose String form matches name,
// ignoring case and surrounding space.
func ParseSource(name string) (Source, error) {
	for s := SourceHarmonics; s <= SourceSine; s++ {
		if strings.EqualFold(strings.TrimSpace(name), s.String()) {
			return s, nil
		}
	}

	return 0, fmt.Errorf("synth: %w: unknown source: %q", core.ErrInvalidConfig, name)
}

// ParseFilterMode is the FilterMode counterpart of ParseSource.
func ParseFilterMode(name string) (FilterMode, error) {
	for m := FilterMoog; m <= FilterNone; m++ {
		if strings.EqualFold(strings.TrimSpace(name), m.String()) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("synth: %w: unknown filter: %q", core.ErrInvalidConfig, name)
}

// Option mutates processor construction parameters.
type Option func(*config) error

type config struct {
	core.ProcessorConfig

	params     Params
	source     Source
	filter     FilterMode
	saturate   bool
	topology   butterworth.Topology
	sharpness  float64
	glide      float64
	dither     float64
	ditherSeed int64
	dcRemover  bool

	echo         bool
	echoDelay    int
	echoFeedback float64

	onConfigError func(error)
}

func defaultConfig() config {
	return config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		params:          DefaultParams(),
		source:          SourceHarmonics,
		filter:          FilterMoog,
		topology:        butterworth.TopologyCascade,
		sharpness:       butterworth.DefaultSharpness,
		glide:           1,
		dither:          defaultDither,
		ditherSeed:      defaultDitherSeed,
	}
}

// WithSampleRate sets the sample rate. Default is core.DefaultSampleRate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if err := core.ValidateSampleRate("synth", sampleRate); err != nil {
			return err
		}

		cfg.SampleRate = sampleRate

		return nil
	}
}

// WithBlockSize sets the largest block configured as one unit. Longer
// buffers passed to Process are split. Default is core.DefaultBlockSize.
func WithBlockSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("synth: %w: block size must be > 0: %d", core.ErrInvalidConfig, n)
		}

		cfg.BlockSize = n

		return nil
	}
}

// WithProcessorConfig applies shared host settings. Invalid values are
// ignored, as core.ApplyProcessorOptions does.
func WithProcessorConfig(opts ...core.ProcessorOption) Option {
	return func(cfg *config) error {
		for _, o := range opts {
			if o != nil {
				o(&cfg.ProcessorConfig)
			}
		}

		return nil
	}
}

// WithParams sets the initial parameter snapshot.
func WithParams(p Params) Option {
	return func(cfg *config) error {
		cfg.params = p.Clamped()
		return nil
	}
}

// WithSource selects the generator. Default is SourceHarmonics.
func WithSource(s Source) Option {
	return func(cfg *config) error {
		if s < SourceHarmonics || s > SourceSine {
			return fmt.Errorf("synth: %w: unknown source: %d", core.ErrInvalidConfig, int(s))
		}

		cfg.source = s

		return nil
	}
}

// WithFilter selects the filter stage. Default is FilterMoog.
func WithFilter(m FilterMode) Option {
	return func(cfg *config) error {
		if m < FilterMoog || m > FilterNone {
			return fmt.Errorf("synth: %w: unknown filter mode: %d", core.ErrInvalidConfig, int(m))
		}

		cfg.filter = m

		return nil
	}
}

// WithSaturation hard-clips the ladder output to [-1, 1].
func WithSaturation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.saturate = enabled
		return nil
	}
}

// WithButterworthTopology selects the Butterworth section layout.
func WithButterworthTopology(t butterworth.Topology) Option {
	return func(cfg *config) error {
		if t != butterworth.TopologyCascade && t != butterworth.TopologyLegacySingle {
			return fmt.Errorf("synth: %w: unknown topology: %d", core.ErrInvalidConfig, int(t))
		}

		cfg.topology = t

		return nil
	}
}

// WithButterworthSharpness sets the base sharpness of the Butterworth
// stages. The effective sharpness is base·(1 + resonance).
func WithButterworthSharpness(s float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(s) || s <= 1 {
			return fmt.Errorf("synth: %w: sharpness must be > 1 and finite: %v", core.ErrInvalidConfig, s)
		}

		cfg.sharpness = s

		return nil
	}
}

// WithCutoffGlide smooths the filter cutoff from block to block with a
// one-pole of coefficient k in (0, 1]. 1 disables gliding.
func WithCutoffGlide(k float64) Option {
	return func(cfg *config) error {
		if !(k > 0 && k <= 1) {
			return fmt.Errorf("synth: %w: glide must be in (0, 1]: %v", core.ErrInvalidConfig, k)
		}

		cfg.glide = k

		return nil
	}
}

// WithDither sets the amplitude of the non-negative noise added to every
// output sample and the noise seed. Amplitude 0 disables dither.
func WithDither(amplitude float64, seed int64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(amplitude) || amplitude < 0 {
			return fmt.Errorf("synth: %w: dither must be >= 0 and finite: %v", core.ErrInvalidConfig, amplitude)
		}

		cfg.dither = amplitude
		cfg.ditherSeed = seed

		return nil
	}
}

// WithDCRemover inserts a DC remover after the filter stage.
func WithDCRemover(enabled bool) Option {
	return func(cfg *config) error {
		cfg.dcRemover = enabled
		return nil
	}
}

// WithEcho inserts a feedback echo after the filter stage. Repeats are
// darkened by a 3-tap smoother on the feedback path.
func WithEcho(delaySamples int, feedback float64) Option {
	return func(cfg *config) error {
		if delaySamples <= 0 {
			return fmt.Errorf("synth: %w: echo delay must be > 0: %d", core.ErrInvalidConfig, delaySamples)
		}

		if !(feedback >= 0 && feedback < 1) {
			return fmt.Errorf("synth: %w: echo feedback must be in [0, 1): %v", core.ErrInvalidConfig, feedback)
		}

		cfg.echo = true
		cfg.echoDelay = delaySamples
		cfg.echoFeedback = feedback

		return nil
	}
}

// WithDefaultEcho inserts the echo with its default length and feedback.
func WithDefaultEcho() Option {
	return WithEcho(delay.DefaultDelaySamples, defaultEchoFeedback)
}

// WithConfigErrorHandler installs fn to receive configuration failures.
// fn runs on the rendering goroutine at block setup; it must not block.
// A failure is reported once per distinct parameter snapshot.
func WithConfigErrorHandler(fn func(error)) Option {
	return func(cfg *config) error {
		cfg.onConfigError = fn
		return nil
	}
}

// Processor renders blocks of the synth voice.
type Processor struct {
	cfg   config
	store *ParamStore

	source core.Generator
	bank   *harmonic.Bank
	pulse  *osc.Pulse
	sine   *osc.Sine

	filter core.Processor
	ladder *moog.Filter
	bwLow  *butterworth.Lowpass
	bwHigh *butterworth.Highpass
	bwBand *butterworth.Bandpass
	rcBand *rc.Bandpass

	glide    *onepole.Boxcar
	dc       *onepole.DCRemover
	echo     *delay.Line
	echoTone *onepole.Smoother
	noise    *osc.Noise

	ramp []float64
	gain float64

	applied   Params
	cutoffHz  float64
	failed    Params
	hasFailed bool
	lastErr   atomic.Pointer[error]
}

// New builds a processor. The initial parameters are applied immediately;
// an error is returned if they cannot be.
func New(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		if o == nil {
			continue
		}

		if err := o(&cfg); err != nil {
			return nil, err
		}
	}

	p := &Processor{
		cfg:   cfg,
		store: NewParamStore(cfg.params),
		ramp:  make([]float64, cfg.BlockSize),
		gain:  cfg.params.Volume,
		noise: osc.NewNoise(cfg.ditherSeed),
	}

	if err := p.build(); err != nil {
		return nil, err
	}

	if err := p.configure(p.store.Load()); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Processor) build() error {
	sr := p.cfg.SampleRate
	params := p.cfg.params

	var err error

	switch p.cfg.source {
	case SourceHarmonics:
		p.bank, err = harmonic.New(sr, harmonic.WithAmplitude(1))
		p.source = p.bank
	case SourcePulse:
		p.pulse, err = osc.NewPulse(sr, core.OctaveToHz(BaseHz, params.Octave))
		p.source = p.pulse
	case SourceSine:
		p.sine, err = osc.NewSine(sr, core.OctaveToHz(BaseHz, params.Octave))
		if err == nil {
			p.sine.SetWrapPhase(true)
		}

		p.source = p.sine
	}

	if err != nil {
		return err
	}

	cutoff := core.OctaveToHz(BaseHz, params.FilterOctave)
	sharpness := p.sharpness(params.Resonance)

	switch p.cfg.filter {
	case FilterMoog:
		p.ladder, err = moog.New(sr, moog.WithCutoffHz(cutoff), moog.WithResonance(params.Resonance), moog.WithSaturation(p.cfg.saturate))
		p.filter = p.ladder
	case FilterButterworthLowpass:
		p.bwLow, err = butterworth.NewLowpass(sr, p.lowpassCutoff(cutoff, sharpness), 1, sharpness, butterworth.WithTopology(p.cfg.topology))
		p.filter = p.bwLow
	case FilterButterworthHighpass:
		p.bwHigh, err = butterworth.NewHighpass(sr, p.highpassCutoff(cutoff), 1, sharpness, butterworth.WithTopology(p.cfg.topology))
		p.filter = p.bwHigh
	case FilterButterworthBandpass:
		lo, hi := p.band(cutoff, sharpness)
		p.bwBand, err = butterworth.NewBandpass(sr, lo, hi, sharpness, butterworth.WithTopology(p.cfg.topology))
		p.filter = p.bwBand
	case FilterRCBandpass:
		lo, hi := p.band(cutoff, math.Inf(1))
		p.rcBand, err = rc.NewBandpass(sr, lo, hi)
		p.filter = p.rcBand
	case FilterNone:
		p.filter = core.ProcessorFunc(func(x float64) float64 { return x })
	}

	if err != nil {
		return err
	}

	if p.glide, err = onepole.NewBoxcar(p.cfg.glide); err != nil {
		return err
	}

	p.glide.SetState(cutoff)

	if p.cfg.dcRemover {
		p.dc = onepole.NewDCRemover()
	}

	if p.cfg.echo {
		p.echo, err = delay.New(p.cfg.echoDelay, delay.WithFeedback(p.cfg.echoFeedback))
		if err != nil {
			return err
		}

		p.echoTone = onepole.NewSmoother()
	}

	return nil
}

// Params returns the store control threads write to.
func (p *Processor) Params() *ParamStore { return p.store }

// SampleRate returns the sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.cfg.SampleRate }

// BlockSize returns the configuration block size.
func (p *Processor) BlockSize() int { return p.cfg.BlockSize }

// Source returns the generator in use.
func (p *Processor) Source() Source { return p.cfg.source }

// Filter returns the filter mode in use.
func (p *Processor) Filter() FilterMode { return p.cfg.filter }

// Applied returns the parameters of the most recent block setup.
// It must be called from the rendering goroutine.
func (p *Processor) Applied() Params { return p.applied }

// CutoffHz returns the filter cutoff of the most recent block setup,
// after glide. It must be called from the rendering goroutine.
func (p *Processor) CutoffHz() float64 { return p.cutoffHz }

// LastConfigError returns the most recent configuration failure, or nil.
// Safe to call from any goroutine.
func (p *Processor) LastConfigError() error {
	if e := p.lastErr.Load(); e != nil {
		return *e
	}

	return nil
}

// Process renders len(dst) samples. Buffers longer than the block size are
// rendered as consecutive blocks, each with its own parameter snapshot.
func (p *Processor) Process(dst []float64) {
	for len(dst) > 0 {
		n := min(len(dst), len(p.ramp))
		p.processBlock(dst[:n])
		dst = dst[n:]
	}
}

// ProcessFloat32 renders into a float32 buffer using scratch, which must be
// at least as long as dst.
func (p *Processor) ProcessFloat32(dst []float32, scratch []float64) {
	buf := scratch[:len(dst)]
	p.Process(buf)

	for i, x := range buf {
		dst[i] = float32(x)
	}
}

func (p *Processor) processBlock(blk []float64) {
	params := p.store.Load()
	if err := p.configure(params); err != nil {
		p.fail(params, err)
	}

	for i := range blk {
		blk[i] = p.filter.ProcessSample(p.source.NextSample())
	}

	if p.dc != nil {
		for i, x := range blk {
			blk[i] = p.dc.ProcessSample(x)
		}
	}

	if p.echo != nil {
		for i, x := range blk {
			blk[i] = x + p.echo.ProcessSampleWith(x, p.echoTone)
		}
	}

	p.applyGain(blk, p.applied.Volume)

	if p.cfg.dither > 0 {
		for i := range blk {
			blk[i] += p.cfg.dither * p.noise.Unipolar()
		}
	}
}

// applyGain ramps linearly from the previous block's volume to target.
func (p *Processor) applyGain(blk []float64, target float64) {
	n := len(blk)
	ramp := p.ramp[:n]

	if p.gain == target {
		for i := range ramp {
			ramp[i] = target
		}
	} else {
		step := (target - p.gain) / float64(n)
		for i := range ramp {
			ramp[i] = p.gain + step*float64(i+1)
		}

		ramp[n-1] = target
	}

	vecmath.MulBlockInPlace(blk, ramp)
	p.gain = target
}

// configure maps params onto every stage. A stage that rejects its new
// settings keeps its previous ones; the first error is returned.
func (p *Processor) configure(params Params) error {
	params = params.Clamped()
	freq := core.OctaveToHz(BaseHz, params.Octave)
	cutoff := p.glide.ProcessSample(core.OctaveToHz(BaseHz, params.FilterOctave))

	var firstErr error

	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	switch p.cfg.source {
	case SourceHarmonics:
		keep(p.bank.Configure(harmonic.Settings{
			BaseHz: freq,
			Count:  harmonic.CountFromControl(params.HarmonicCount),
			Offset: params.HarmonicOffset,
			Center: params.SpectrumCenter,
			Width:  params.SpectrumWidth,
		}))
	case SourcePulse:
		keep(p.pulse.SetFrequency(freq))
		keep(p.pulse.SetWidth(params.PulseWidth))
	case SourceSine:
		keep(p.sine.SetFrequency(freq))
	}

	sharpness := p.sharpness(params.Resonance)

	switch p.cfg.filter {
	case FilterMoog:
		keep(p.ladder.Configure(cutoff, params.Resonance))
	case FilterButterworthLowpass:
		keep(p.bwLow.Set(p.lowpassCutoff(cutoff, sharpness), 1, sharpness))
	case FilterButterworthHighpass:
		keep(p.bwHigh.Set(p.highpassCutoff(cutoff), 1, sharpness))
	case FilterButterworthBandpass:
		lo, hi := p.band(cutoff, sharpness)
		keep(p.bwBand.Set(lo, hi, sharpness))
	case FilterRCBandpass:
		lo, hi := p.band(cutoff, math.Inf(1))
		keep(p.rcBand.SetFreqs(lo, hi))
	}

	p.applied = params
	p.cutoffHz = cutoff

	return firstErr
}

func (p *Processor) fail(params Params, err error) {
	if p.hasFailed && p.failed == params {
		return
	}

	stored := err
	p.lastErr.Store(&stored)
	p.failed = params
	p.hasFailed = true

	if p.cfg.onConfigError != nil {
		p.cfg.onConfigError(err)
	}
}

func (p *Processor) sharpness(resonance float64) float64 {
	return p.cfg.sharpness * (1 + resonance)
}

func (p *Processor) lowpassCutoff(cutoff, sharpness float64) float64 {
	return math.Min(cutoff, butterworth.MaxLowpassCutoff(p.cfg.SampleRate, sharpness))
}

func (p *Processor) highpassCutoff(cutoff float64) float64 {
	return math.Min(cutoff, 0.49*p.cfg.SampleRate)
}

// band returns the edges one octave either side of cutoff, kept below
// Nyquist for a lowpass leg of the given sharpness.
func (p *Processor) band(cutoff, sharpness float64) (lo, hi float64) {
	limit := 0.49 * p.cfg.SampleRate
	if !math.IsInf(sharpness, 1) {
		limit = butterworth.MaxLowpassCutoff(p.cfg.SampleRate, sharpness)
	}

	hi = math.Min(2*cutoff, limit)
	lo = math.Min(cutoff/2, hi/2)

	return lo, hi
}

// Reset returns every stage to silence and restarts the dither sequence.
func (p *Processor) Reset() {
	if r, ok := p.source.(core.Resetter); ok {
		r.Reset()
	}

	if r, ok := p.filter.(core.Resetter); ok {
		r.Reset()
	}

	p.glide.Reset()
	p.glide.SetState(core.OctaveToHz(BaseHz, p.store.Load().FilterOctave))

	if p.dc != nil {
		p.dc.Reset()
	}

	if p.echo != nil {
		p.echo.Reset()
		p.echoTone.Reset()
	}

	p.noise.Reset()
	p.gain = p.store.Load().Volume
}
