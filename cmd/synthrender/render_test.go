package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/synth"
	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"
)

func TestAssignments(t *testing.T) {
	var a assignments

	for _, s := range []string{"vol=0.25", " OCTAVE = 3 "} {
		if err := a.Set(s); err != nil {
			t.Fatalf("Set(%q): %v", s, err)
		}
	}

	want := assignments{{synth.ParamVolume, 0.25}, {synth.ParamOctave, 3}}
	if diff := cmp.Diff(want, a, cmp.AllowUnexported(assignment{})); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if a.String() != "vol=0.25,octave=3" {
		t.Fatalf("String = %q", a.String())
	}

	if err := a.Set("cutoff=1"); !errors.Is(err, synth.ErrUnknownParam) {
		t.Fatalf("unknown name: %v", err)
	}

	for _, bad := range []string{"vol", "vol=loud"} {
		if err := a.Set(bad); err == nil {
			t.Fatalf("Set(%q) accepted", bad)
		}
	}
}

func TestToPCM16Clips(t *testing.T) {
	got := toPCM16([]float64{0, 0.5, -0.5, 2, -2, math.NaN(), math.Inf(1)})
	want := []int{0, 16384, -16384, 32767, -32767, 0, 0}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteWAVRoundTrip(t *testing.T) {
	p, err := synth.New(synth.WithSampleRate(22050), synth.WithDither(0, 1))
	if err != nil {
		t.Fatal(err)
	}

	samples := render(p, 1000)
	path := filepath.Join(t.TempDir(), "out.wav")

	if err := writeWAV(path, samples, 22050); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}

	if dec.SampleRate != 22050 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Fatalf("header: rate %d, channels %d, depth %d", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	if diff := cmp.Diff(toPCM16(samples), buf.Data); diff != "" {
		t.Fatalf("PCM mismatch (-want +got):\n%s", diff)
	}
}

func TestDominantFrequency(t *testing.T) {
	const sr = 11264.0 // 8192-point bins are 1.375 Hz wide

	p, err := synth.New(
		synth.WithSampleRate(sr),
		synth.WithSource(synth.SourceSine),
		synth.WithFilter(synth.FilterNone),
		synth.WithDither(0, 1),
	)
	if err != nil {
		t.Fatal(err)
	}

	hz, err := dominantFrequency(render(p, 16384), sr)
	if err != nil {
		t.Fatal(err)
	}

	if hz != 352 {
		t.Fatalf("dominant frequency %v, want 352", hz)
	}
}
