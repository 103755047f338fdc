package rc

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/internal/testutil"
)

func TestLowpassAlpha(t *testing.T) {
	l, err := NewLowpass(44100, 1000)
	if err != nil {
		t.Fatalf("NewLowpass() error = %v", err)
	}

	rc := 1 / (2 * math.Pi * 1000)
	dt := 1 / 44100.0
	if want := dt / (rc + dt); math.Abs(l.Alpha()-want) > 1e-15 {
		t.Fatalf("alpha = %v, want %v", l.Alpha(), want)
	}
}

func TestLowpassMonotonicSettling(t *testing.T) {
	for _, cutoff := range []float64{5, 200, 3000, 20000} {
		l, err := NewLowpass(44100, cutoff)
		if err != nil {
			t.Fatalf("NewLowpass(%v) error = %v", cutoff, err)
		}

		for _, c := range []float64{1, -0.4, 3} {
			l.Reset()
			prev := 0.0
			for i := range 2000 {
				y := l.ProcessSample(c)
				if math.Abs(c-y) > math.Abs(c-prev) {
					t.Fatalf("cutoff %v, c %v: step %d moved away (%v -> %v)", cutoff, c, i, prev, y)
				}
				if (c > 0 && y > c) || (c < 0 && y < c) {
					t.Fatalf("cutoff %v, c %v: overshoot %v", cutoff, c, y)
				}
				prev = y
			}
		}
	}
}

func TestLowpassZeroCutoffFreezes(t *testing.T) {
	l, _ := NewLowpass(44100, 0)
	for range 10 {
		if y := l.ProcessSample(1); y != 0 {
			t.Fatalf("output %v, want 0 with alpha 0", y)
		}
	}

	if err := l.SetCutoff(-1); err == nil {
		t.Fatal("expected error for negative cutoff")
	}
}

func TestSilence(t *testing.T) {
	l, _ := NewLowpass(44100, 800)
	b, _ := NewBandpass(44100, 100, 2000)

	for i := range 512 {
		if y := l.ProcessSample(0); y != 0 {
			t.Fatalf("lowpass sample %d = %v", i, y)
		}
		if y := b.ProcessSample(0); y != 0 {
			t.Fatalf("bandpass sample %d = %v", i, y)
		}
	}

	b.ProcessInPlace(testutil.DeterministicNoise(3, 1, 128))
	b.Reset()
	for i := range 512 {
		if y := b.ProcessSample(0); y != 0 {
			t.Fatalf("bandpass after reset sample %d = %v", i, y)
		}
	}
}

func TestBandpassRejectsDC(t *testing.T) {
	b, err := NewBandpass(44100, 50, 5000)
	if err != nil {
		t.Fatalf("NewBandpass() error = %v", err)
	}

	var y float64
	for range 44100 {
		y = b.ProcessSample(1)
	}

	if math.Abs(y) > 1e-6 {
		t.Fatalf("dc output = %v, want ~0", y)
	}
}

func TestBandpassPassesMidband(t *testing.T) {
	b, _ := NewBandpass(44100, 100, 8000)
	in := testutil.DeterministicSine(1000, 44100, 1, 8820)
	b.ProcessInPlace(in)

	peak := 0.0
	for _, v := range in[4410:] {
		peak = math.Max(peak, math.Abs(v))
	}

	if peak < 0.7 {
		t.Fatalf("midband peak = %v, want > 0.7", peak)
	}
}

func TestBandpassSetFreqsAtomic(t *testing.T) {
	b, _ := NewBandpass(44100, 100, 2000)
	if err := b.SetFreqs(200, math.NaN()); err == nil {
		t.Fatal("expected error")
	}
	if b.HighpassHz() != 100 || b.LowpassHz() != 2000 {
		t.Fatalf("corners changed on error: %v %v", b.HighpassHz(), b.LowpassHz())
	}
}
