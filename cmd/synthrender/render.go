package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/scope"
	"github.com/cwbudde/algo-synth/dsp/synth"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const analysisSize = 8192

type assignment struct {
	name  string
	value float64
}

// assignments collects repeated -set name=value flags.
type assignments []assignment

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, v := range *a {
		parts[i] = fmt.Sprintf("%s=%g", v.name, v.value)
	}

	return strings.Join(parts, ",")
}

func (a *assignments) Set(s string) error {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("want name=value, got %q", s)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := synth.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", synth.ErrUnknownParam, name)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	*a = append(*a, assignment{name: name, value: v})

	return nil
}

// render pulls n samples from p one block at a time.
func render(p *synth.Processor, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i += p.BlockSize() {
		p.Process(out[i:min(n, i+p.BlockSize())])
	}

	return out
}

func peak(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}

	return m
}

func dominantFrequency(samples []float64, sampleRate float64) (float64, error) {
	a, err := scope.NewAnalyzer(sampleRate, analysisSize)
	if err != nil {
		return 0, err
	}

	if _, err := a.Magnitudes(samples); err != nil {
		return 0, err
	}

	return a.Frequency(a.PeakBin()), nil
}

// toPCM16 clips samples to [-1, 1] and scales them to 16-bit integers.
func toPCM16(samples []float64) []int {
	data := make([]int, len(samples))
	for i, x := range samples {
		data[i] = int(math.Round(core.Clip(core.Sanitize(x)) * 32767))
	}

	return data
}

func writeWAV(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           toPCM16(samples),
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return err
	}

	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
