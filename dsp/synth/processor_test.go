package synth

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/butterworth"
	"github.com/cwbudde/algo-synth/dsp/filter/moog"
	"github.com/cwbudde/algo-synth/dsp/harmonic"
	"github.com/cwbudde/algo-synth/internal/testutil"
)

var allFilters = []FilterMode{
	FilterMoog,
	FilterButterworthLowpass,
	FilterButterworthHighpass,
	FilterButterworthBandpass,
	FilterRCBandpass,
	FilterNone,
}

var allSources = []Source{SourceHarmonics, SourcePulse, SourceSine}

func mustNew(t testing.TB, opts ...Option) *Processor {
	t.Helper()

	p, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return p
}

func TestNewDefaults(t *testing.T) {
	p := mustNew(t)

	if p.SampleRate() != core.DefaultSampleRate {
		t.Fatalf("SampleRate = %v", p.SampleRate())
	}

	if p.BlockSize() != core.DefaultBlockSize {
		t.Fatalf("BlockSize = %v", p.BlockSize())
	}

	if p.Source() != SourceHarmonics || p.Filter() != FilterMoog {
		t.Fatalf("source %v filter %v", p.Source(), p.Filter())
	}

	if p.Applied() != DefaultParams() {
		t.Fatalf("Applied = %+v", p.Applied())
	}

	if want := BaseHz * 32; math.Abs(p.CutoffHz()-want) > 1e-9 {
		t.Fatalf("CutoffHz = %v, want %v", p.CutoffHz(), want)
	}

	if p.LastConfigError() != nil {
		t.Fatalf("LastConfigError = %v", p.LastConfigError())
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"sample rate", WithSampleRate(0)},
		{"block size", WithBlockSize(0)},
		{"source", WithSource(Source(9))},
		{"filter", WithFilter(FilterMode(-1))},
		{"topology", WithButterworthTopology(7)},
		{"sharpness", WithButterworthSharpness(1)},
		{"glide zero", WithCutoffGlide(0)},
		{"glide above one", WithCutoffGlide(1.5)},
		{"dither", WithDither(-0.1, 1)},
		{"echo delay", WithEcho(0, 0.5)},
		{"echo feedback", WithEcho(10, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestStringers(t *testing.T) {
	if s := FilterButterworthBandpass.String(); s != "butterworth-bandpass" {
		t.Fatalf("got %q", s)
	}

	if s := SourcePulse.String(); s != "pulse" {
		t.Fatalf("got %q", s)
	}

	if s := Source(7).String(); s != "Source(7)" {
		t.Fatalf("got %q", s)
	}
}

func TestParseModes(t *testing.T) {
	for _, src := range allSources {
		got, err := ParseSource(" " + strings.ToUpper(src.String()))
		if err != nil || got != src {
			t.Fatalf("ParseSource(%v) = %v, %v", src, got, err)
		}
	}

	for _, mode := range allFilters {
		got, err := ParseFilterMode(mode.String())
		if err != nil || got != mode {
			t.Fatalf("ParseFilterMode(%v) = %v, %v", mode, got, err)
		}
	}

	if _, err := ParseSource("saw"); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("unknown source: %v", err)
	}

	if _, err := ParseFilterMode("comb"); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("unknown filter: %v", err)
	}
}

// The default voice is the harmonic bank into the ladder, scaled by volume.
func TestProcessMatchesManualChain(t *testing.T) {
	const (
		sr = 48000.0
		n  = 1000
	)

	p := mustNew(t, WithSampleRate(sr), WithDither(0, 1))

	got := make([]float64, n)
	p.Process(got)

	params := DefaultParams()
	freq := core.OctaveToHz(BaseHz, params.Octave)
	cutoff := core.OctaveToHz(BaseHz, params.FilterOctave)

	bank, err := harmonic.New(sr, harmonic.WithAmplitude(1), harmonic.WithSettings(harmonic.Settings{
		BaseHz: freq,
		Count:  5,
		Offset: -1,
		Center: 0.5,
		Width:  1,
	}))
	if err != nil {
		t.Fatal(err)
	}

	ladder, err := moog.New(sr, moog.WithCutoffHz(cutoff), moog.WithResonance(params.Resonance))
	if err != nil {
		t.Fatal(err)
	}

	want := make([]float64, n)
	for i := range want {
		want[i] = ladder.ProcessSample(bank.NextSample()) * params.Volume
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestProcessSplitsLongBuffers(t *testing.T) {
	a := mustNew(t, WithBlockSize(128))
	b := mustNew(t, WithBlockSize(128))

	whole := make([]float64, 300)
	a.Process(whole)

	parts := make([]float64, 300)
	b.Process(parts[:128])
	b.Process(parts[128:256])
	b.Process(parts[256:])

	testutil.RequireSliceNearlyEqual(t, whole, parts, 0)
}

func TestAllSourcesAndFiltersStayFinite(t *testing.T) {
	for _, src := range allSources {
		for _, mode := range allFilters {
			t.Run(src.String()+"/"+mode.String(), func(t *testing.T) {
				p := mustNew(t, WithSource(src), WithFilter(mode))

				buf := make([]float64, 8192)
				p.Process(buf)

				testutil.RequireFinite(t, buf)

				if testutil.Peak(buf) == 0 {
					t.Fatal("output is silent")
				}

				if testutil.Peak(buf) > 10 {
					t.Fatalf("output peak %v", testutil.Peak(buf))
				}
			})
		}
	}
}

func TestButterworthTopologiesRender(t *testing.T) {
	for _, mode := range []FilterMode{FilterButterworthLowpass, FilterButterworthHighpass, FilterButterworthBandpass} {
		p := mustNew(t,
			WithSource(SourcePulse),
			WithFilter(mode),
			WithButterworthTopology(butterworth.TopologyLegacySingle),
			WithButterworthSharpness(2),
		)

		buf := make([]float64, 4096)
		p.Process(buf)
		testutil.RequireFinite(t, buf)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	params := DefaultParams()
	params.Volume = 0

	p := mustNew(t, WithParams(params), WithDither(0, 1))

	buf := make([]float64, 1024)
	p.Process(buf)

	testutil.RequireAllZero(t, buf)
}

func TestDitherIsNonNegativeAndBounded(t *testing.T) {
	params := DefaultParams()
	params.Volume = 0

	p := mustNew(t, WithParams(params), WithDither(0.01, 7))

	buf := make([]float64, 1024)
	p.Process(buf)

	testutil.RequireInRange(t, buf, 0, 0.01)

	if testutil.Peak(buf) == 0 {
		t.Fatal("dither produced nothing")
	}
}

func TestVolumeRampsAcrossOneBlock(t *testing.T) {
	p := mustNew(t, WithSource(SourceSine), WithFilter(FilterNone), WithDither(0, 1), WithBlockSize(64))

	first := make([]float64, 64)
	p.Process(first)

	if err := p.Params().Set(ParamVolume, 0); err != nil {
		t.Fatal(err)
	}

	ramp := make([]float64, 64)
	p.Process(ramp)

	if ramp[63] != 0 {
		t.Fatalf("last ramp sample %v, want 0", ramp[63])
	}

	if ramp[0] == 0 {
		t.Fatal("ramp started at the target")
	}

	after := make([]float64, 64)
	p.Process(after)
	testutil.RequireAllZero(t, after)
}

func TestParamChangesApplyAtNextBlock(t *testing.T) {
	p := mustNew(t, WithSource(SourcePulse))

	if err := p.Params().Set(ParamOctave, 12); err != nil {
		t.Fatal(err)
	}

	if p.Applied().Octave != 5 {
		t.Fatalf("applied before render: %v", p.Applied().Octave)
	}

	buf := make([]float64, 16)
	p.Process(buf)

	if p.Applied().Octave != 9 {
		t.Fatalf("Applied().Octave = %v, want 9", p.Applied().Octave)
	}
}

func TestCutoffGlide(t *testing.T) {
	p := mustNew(t, WithCutoffGlide(0.5), WithBlockSize(32))
	start := p.CutoffHz()

	if err := p.Params().Set(ParamFilterOctave, 6); err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 32)
	p.Process(buf)

	target := core.OctaveToHz(BaseHz, 6)
	if want := (start + target) / 2; math.Abs(p.CutoffHz()-want) > 1e-9 {
		t.Fatalf("CutoffHz after one block = %v, want %v", p.CutoffHz(), want)
	}

	for range 60 {
		p.Process(buf)
	}

	if math.Abs(p.CutoffHz()-target) > 1e-6 {
		t.Fatalf("glide did not settle: %v", p.CutoffHz())
	}
}

func TestResetRestartsRender(t *testing.T) {
	opts := []Option{WithDCRemover(true), WithDefaultEcho(), WithDither(0.01, 3)}

	p := mustNew(t, opts...)
	fresh := mustNew(t, opts...)

	warm := make([]float64, 5000)
	p.Process(warm)
	p.Reset()

	got := make([]float64, 2000)
	p.Process(got)

	want := make([]float64, 2000)
	fresh.Process(want)

	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestEchoAddsRepeats(t *testing.T) {
	dry := mustNew(t, WithDither(0, 1))
	wet := mustNew(t, WithDither(0, 1), WithEcho(100, 0.5))

	a := make([]float64, 400)
	b := make([]float64, 400)

	dry.Process(a)
	wet.Process(b)

	testutil.RequireSliceNearlyEqual(t, b[:100], a[:100], 0)

	if d, err := testutil.MaxAbsDiff(a[100:], b[100:]); err != nil || d == 0 {
		t.Fatal("echo left the signal unchanged")
	}

	testutil.RequireFinite(t, b)
}

func TestDCRemoverCentresPulse(t *testing.T) {
	params := DefaultParams()
	params.PulseWidth = 0.1

	raw := mustNew(t, WithSource(SourcePulse), WithFilter(FilterNone), WithParams(params), WithDither(0, 1))
	dc := mustNew(t, WithSource(SourcePulse), WithFilter(FilterNone), WithParams(params), WithDither(0, 1), WithDCRemover(true))

	a := make([]float64, 48000)
	b := make([]float64, 48000)

	raw.Process(a)
	dc.Process(b)

	if m := mean(b[24000:]); math.Abs(m) > 0.01 {
		t.Fatalf("mean with DC remover %v", m)
	}

	if m := mean(a[24000:]); math.Abs(m) < 0.1 {
		t.Fatalf("raw pulse mean %v, expected a clear offset", m)
	}
}

func mean(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}

	return s / float64(len(x))
}

func TestConfigErrorKeepsPreviousSettings(t *testing.T) {
	var reported []error

	p := mustNew(t,
		WithSource(SourcePulse),
		WithFilter(FilterButterworthLowpass),
		WithConfigErrorHandler(func(err error) { reported = append(reported, err) }),
	)

	before := p.bwLow.Filter().Design()

	// An extreme sharpness needs more sections than the filter holds.
	p.cfg.sharpness = 1000

	buf := make([]float64, 512)
	p.Process(buf)

	if len(reported) != 1 {
		t.Fatalf("handler called %d times, want 1", len(reported))
	}

	if !errors.Is(p.LastConfigError(), core.ErrInvalidConfig) {
		t.Fatalf("LastConfigError = %v", p.LastConfigError())
	}

	if got := p.bwLow.Filter().Design(); got.Order != before.Order || got.CutoffHz != before.CutoffHz {
		t.Fatalf("design changed on failure: %+v -> %+v", before, got)
	}

	testutil.RequireFinite(t, buf)

	if testutil.Peak(buf) == 0 {
		t.Fatal("render stopped after a configuration failure")
	}

	p.Process(buf)

	if len(reported) != 1 {
		t.Fatalf("same failure reported %d times", len(reported))
	}

	if err := p.Params().Set(ParamFilterOctave, 4); err != nil {
		t.Fatal(err)
	}

	p.Process(buf)

	if len(reported) != 2 {
		t.Fatalf("new failing snapshot reported %d times in total, want 2", len(reported))
	}
}

func TestRepeatedFailureDoesNotAllocate(t *testing.T) {
	p := mustNew(t)
	params := p.Params().Load()
	errBad := fmt.Errorf("synth: %w: test", core.ErrInvalidConfig)

	p.fail(params, errBad)

	allocs := testing.AllocsPerRun(50, func() {
		p.fail(params, errBad)
	})
	if allocs != 0 {
		t.Fatalf("repeated failure allocated %v times", allocs)
	}

	if !errors.Is(p.LastConfigError(), errBad) {
		t.Fatalf("LastConfigError = %v", p.LastConfigError())
	}
}

func TestProcessFloat32(t *testing.T) {
	a := mustNew(t)
	b := mustNew(t)

	want := make([]float64, 700)
	a.Process(want)

	got := make([]float32, 700)
	b.ProcessFloat32(got, make([]float64, 1024))

	for i := range got {
		if got[i] != float32(want[i]) {
			t.Fatalf("sample %d: %v != %v", i, got[i], float32(want[i]))
		}
	}
}

func TestProcessDoesNotAllocate(t *testing.T) {
	for _, mode := range allFilters {
		p := mustNew(t, WithFilter(mode), WithDefaultEcho(), WithDCRemover(true))
		buf := make([]float64, 2048)

		allocs := testing.AllocsPerRun(20, func() {
			p.Process(buf)
		})

		if allocs != 0 {
			t.Fatalf("%v: %v allocs per run", mode, allocs)
		}
	}
}

func BenchmarkProcess(b *testing.B) {
	for _, mode := range allFilters {
		b.Run(mode.String(), func(b *testing.B) {
			p := mustNew(b, WithFilter(mode))
			buf := make([]float64, core.DefaultBlockSize)

			b.ReportAllocs()
			b.SetBytes(int64(len(buf) * 8))
			b.ResetTimer()

			for range b.N {
				p.Process(buf)
			}
		})
	}
}

func TestWithProcessorConfig(t *testing.T) {
	p := mustNew(t, WithProcessorConfig(core.WithSampleRate(96000), core.WithBlockSize(0), core.WithBlockSize(256)))

	if p.SampleRate() != 96000 || p.BlockSize() != 256 {
		t.Fatalf("sample rate %v, block size %d", p.SampleRate(), p.BlockSize())
	}
}
