package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/filter/butterworth"
)

type row struct {
	label  string
	spec   butterworth.Spec
	design butterworth.Design
	passDB float64
	stopDB float64
	stable bool
}

// parseDesign turns lp:<hz>, hp:<hz> or <fpass>:<fstop> into a spec.
func parseDesign(s string, sharpness, pass, stop float64) (butterworth.Spec, error) {
	head, tail, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	if !ok {
		return butterworth.Spec{}, fmt.Errorf("design %q: want lp:<hz>, hp:<hz> or <fpass>:<fstop>", s)
	}

	second, err := strconv.ParseFloat(tail, 64)
	if err != nil {
		return butterworth.Spec{}, fmt.Errorf("design %q: %w", s, err)
	}

	switch head {
	case "lp":
		return butterworth.LowpassSpec(second, sharpness), nil
	case "hp":
		return butterworth.HighpassSpec(second, sharpness), nil
	}

	first, err := strconv.ParseFloat(head, 64)
	if err != nil {
		return butterworth.Spec{}, fmt.Errorf("design %q: %w", s, err)
	}

	return butterworth.Spec{PassHz: first, StopHz: second, Pass: pass, Stop: stop}, nil
}

func analyze(label string, spec butterworth.Spec, sampleRate float64, topology butterworth.Topology) (row, error) {
	f, err := butterworth.New(sampleRate, spec, butterworth.WithTopology(topology))
	if err != nil {
		return row{}, err
	}

	r := row{
		label:  label,
		spec:   spec,
		design: f.Design(),
		passDB: f.MagnitudeDB(spec.PassHz),
		stopDB: f.MagnitudeDB(spec.StopHz),
		stable: true,
	}

	secs := r.design.Sections()
	for i := range secs {
		if !secs[i].Stable() {
			r.stable = false
		}
	}

	return r, nil
}
