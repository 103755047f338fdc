package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/synth"
)

const knobSteps = 40

type knob struct {
	up, down byte
	name     string
}

var knobs = []knob{
	{'q', 'a', synth.ParamVolume},
	{'w', 's', synth.ParamPulseWidth},
	{'e', 'd', synth.ParamResonance},
	{'r', 'f', synth.ParamFilterOctave},
	{'t', 'g', synth.ParamOctave},
	{'y', 'h', synth.ParamHarmonicOffset},
	{'u', 'j', synth.ParamHarmonicCount},
	{'i', 'k', synth.ParamSpectrum},
	{'o', 'l', synth.ParamSpectrumWidth},
}

// step is one knob notch. The harmonic count moves by whole harmonics.
func step(name string) float64 {
	if name == synth.ParamHarmonicCount {
		return 1
	}

	s, _ := synth.Lookup(name)

	return (s.Max - s.Min) / knobSteps
}

func lookupKey(b byte) (name string, delta float64, ok bool) {
	for _, k := range knobs {
		switch b {
		case k.up:
			return k.name, step(k.name), true
		case k.down:
			return k.name, -step(k.name), true
		}
	}

	return "", 0, false
}

func isQuitKey(b byte) bool {
	return b == 0x1b || b == 0x03 || b == 0x04
}

func keyHelp() string {
	var sb strings.Builder

	for i, k := range knobs {
		if i > 0 {
			sb.WriteString("  ")
		}

		fmt.Fprintf(&sb, "%c/%c %s", k.up, k.down, k.name)
	}

	sb.WriteString("  esc quit")

	return sb.String()
}

func formatStatus(p synth.Params) string {
	var sb strings.Builder

	for i, s := range synth.Specs() {
		v, _ := p.Get(s.Name)
		if i > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprintf(&sb, "%s=%.2f", s.Name, v)
	}

	return sb.String()
}
