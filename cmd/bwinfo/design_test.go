package main

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/butterworth"
	"github.com/google/go-cmp/cmp"
)

func TestParseDesign(t *testing.T) {
	tests := []struct {
		in   string
		want butterworth.Spec
	}{
		{"lp:1000", butterworth.LowpassSpec(1000, 2)},
		{"HP:500", butterworth.HighpassSpec(500, 2)},
		{" 1000:2000 ", butterworth.Spec{PassHz: 1000, StopHz: 2000, Pass: 0.9, Stop: 0.1}},
	}

	for _, tt := range tests {
		got, err := parseDesign(tt.in, 2, 0.9, 0.1)
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}

		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", tt.in, diff)
		}
	}

	for _, bad := range []string{"1000", "lp:fast", "bp:100", "x:1"} {
		if _, err := parseDesign(bad, 2, 0.9, 0.1); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestAnalyzeMeetsEdges(t *testing.T) {
	spec := butterworth.Spec{PassHz: 1000, StopHz: 2000, Pass: 0.9, Stop: 0.1}

	r, err := analyze("1000:2000", spec, 44100, butterworth.TopologyCascade)
	if err != nil {
		t.Fatal(err)
	}

	if r.design.Order != 6 || r.design.Kind != butterworth.KindLowpass || !r.stable {
		t.Fatalf("design %v order %d stable %v", r.design.Kind, r.design.Order, r.stable)
	}

	if r.passDB < 20*math.Log10(0.9) || r.stopDB > 20*math.Log10(0.1) {
		t.Fatalf("edges: pass %.2f dB, stop %.2f dB", r.passDB, r.stopDB)
	}
}

func TestAnalyzeRejectsImpossibleOrder(t *testing.T) {
	_, err := analyze("tight", butterworth.Spec{PassHz: 1000, StopHz: 1001, Pass: 0.95, Stop: 0.05}, 44100, butterworth.TopologyCascade)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("got %v", err)
	}
}
