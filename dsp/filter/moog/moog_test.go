package moog

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("New(0) error = %v, want ErrInvalidConfig", err)
	}

	if _, err := New(44100, WithCutoffHz(math.NaN())); err == nil {
		t.Fatal("expected error for NaN cutoff")
	}

	if _, err := New(44100, WithResonance(math.Inf(1))); err == nil {
		t.Fatal("expected error for infinite resonance")
	}
}

func TestConfigureClampsCutoff(t *testing.T) {
	f, err := New(44100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := f.Configure(-300, 0.5); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if f.CutoffHz() != 0 || f.Coefficients().F != 0 {
		t.Fatalf("negative cutoff not clamped: %v %+v", f.CutoffHz(), f.Coefficients())
	}

	if err := f.Configure(1e6, 0.5); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if got := f.Coefficients().F; math.Abs(got-math.Pi) > 1e-12 {
		t.Fatalf("F = %v, want π", got)
	}
}

func TestConfigureRejectsKeepsPrevious(t *testing.T) {
	f, _ := New(44100, WithCutoffHz(800), WithResonance(1))
	before := f.Coefficients()

	if err := f.Configure(math.NaN(), 1); err == nil {
		t.Fatal("expected error")
	}

	if diff := cmp.Diff(before, f.Coefficients()); diff != "" {
		t.Fatalf("coefficients changed on error (-before +after):\n%s", diff)
	}
}

func TestConfigureIdempotent(t *testing.T) {
	f, _ := New(44100)
	_ = f.Configure(1234, 2.2)
	first := f.Coefficients()
	_ = f.Configure(1234, 2.2)

	if diff := cmp.Diff(first, f.Coefficients()); diff != "" {
		t.Fatalf("second Configure changed coefficients:\n%s", diff)
	}
}

func TestFeedbackTracksCutoff(t *testing.T) {
	f, _ := New(44100, WithCutoffHz(100), WithResonance(2))
	low := f.Coefficients().Feedback

	if err := f.SetCutoffHz(15000); err != nil {
		t.Fatalf("SetCutoffHz() error = %v", err)
	}

	c := f.Coefficients()
	want := 2 * (1 - 0.15*c.SqF)
	if c.Feedback != want {
		t.Fatalf("feedback = %v, want %v", c.Feedback, want)
	}
	if c.Feedback >= low {
		t.Fatalf("feedback did not follow cutoff: %v >= %v", c.Feedback, low)
	}
}

func TestSilence(t *testing.T) {
	f, _ := New(44100, WithCutoffHz(2000), WithResonance(3.5))

	out := make([]float64, 4096)
	f.ProcessInPlace(out)
	testutil.RequireAllZero(t, out)

	f.ProcessInPlace(testutil.DeterministicNoise(9, 0.8, 512))
	f.Reset()

	out = make([]float64, 4096)
	f.ProcessInPlace(out)
	testutil.RequireAllZero(t, out)
}

func TestSaturatedOutputBounded(t *testing.T) {
	for _, res := range []float64{0, 1, 3.9, 5} {
		f, err := New(44100, WithCutoffHz(3000), WithResonance(res), WithSaturation(true))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		in := testutil.DeterministicNoise(int64(res*10)+1, 50, 20000)
		f.ProcessInPlace(in)
		testutil.RequireInRange(t, in, -1, 1)
	}
}

func TestImpulseResponseShape(t *testing.T) {
	f, err := New(44100, WithCutoffHz(440), WithResonance(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out := testutil.Impulse(4000, 0)
	f.ProcessInPlace(out)

	want := []float64{
		5.407607295469764e-06,
		2.676355980214864e-05,
		7.475802417623983e-05,
		0.00015760316212355002,
	}
	testutil.RequireSliceNearlyEqual(t, out[:4], want, 1e-15)

	peak := 0
	for i, v := range out {
		if v < 0 {
			t.Fatalf("sign change at %d: %v", i, v)
		}
		if v > out[peak] {
			peak = i
		}
	}

	for i := 1; i <= peak; i++ {
		if out[i] < out[i-1] {
			t.Fatalf("rise not monotonic at %d", i)
		}
	}
	for i := peak + 1; i < len(out); i++ {
		if out[i] > out[i-1] {
			t.Fatalf("decay not monotonic at %d", i)
		}
	}
}

func TestUnityDCGain(t *testing.T) {
	f, _ := New(44100, WithCutoffHz(440))

	var y float64
	for range 20000 {
		y = f.ProcessSample(1)
	}

	if math.Abs(y-1) > 1e-4 {
		t.Fatalf("dc gain = %v, want ~1", y)
	}
}

func TestHighResonanceNotLimited(t *testing.T) {
	f, _ := New(44100, WithCutoffHz(1000), WithResonance(5))

	out := testutil.Impulse(22050, 0)
	f.ProcessInPlace(out)
	testutil.RequireFinite(t, out)

	if p := testutil.Peak(out[20000:]); p < 1 {
		t.Fatalf("expected self-oscillation growth, tail peak = %v", p)
	}
}

func TestResetOnConfigure(t *testing.T) {
	f, _ := New(44100, WithResetOnConfigure(true))
	for range 32 {
		f.ProcessSample(1)
	}

	_ = f.Configure(500, 0)
	if diff := cmp.Diff(State{}, f.State()); diff != "" {
		t.Fatalf("state not cleared:\n%s", diff)
	}
}

func TestStateRoundTrip(t *testing.T) {
	f, _ := New(44100, WithCutoffHz(1200), WithResonance(0.9))
	for i := range 96 {
		f.ProcessSample(math.Sin(2 * math.Pi * float64(i) / 29))
	}

	clone, _ := New(44100, WithCutoffHz(1200), WithResonance(0.9))
	if err := clone.SetState(f.State()); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	for i := range 128 {
		x := math.Sin(2 * math.Pi * float64(i) / 31)
		if y1, y2 := f.ProcessSample(x), clone.ProcessSample(x); y1 != y2 {
			t.Fatalf("state mismatch at %d: %g vs %g", i, y1, y2)
		}
	}

	bad := State{}
	bad.Out[2] = math.NaN()
	if err := clone.SetState(bad); err == nil {
		t.Fatal("expected error for non-finite state")
	}
}

func TestProcessToMatchesSample(t *testing.T) {
	a, _ := New(48000, WithCutoffHz(2400), WithResonance(1.1))
	b, _ := New(48000, WithCutoffHz(2400), WithResonance(1.1))

	in := testutil.DeterministicSine(330, 48000, 0.7, 384)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = a.ProcessSample(x)
	}

	got := make([]float64, len(in))
	b.ProcessTo(got, in)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ProcessTo mismatch:\n%s", diff)
	}
}

func TestNonFiniteInputTreatedAsSilence(t *testing.T) {
	f, _ := New(44100)
	if y := f.ProcessSample(math.NaN()); y != 0 {
		t.Fatalf("NaN input produced %v", y)
	}
}
