package main

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/synth"
)

// stream adapts a processor to the float32 little-endian byte stream the
// audio backend pulls from. It is read from a single goroutine.
type stream struct {
	proc    *synth.Processor
	scratch []float64
	samples []float32
}

func newStream(p *synth.Processor) *stream {
	return &stream{
		proc:    p,
		scratch: make([]float64, 4096),
		samples: make([]float32, 4096),
	}
}

func (s *stream) Read(p []byte) (int, error) {
	n := len(p) / 4
	s.scratch = core.EnsureLen(s.scratch, n)
	s.samples = core.EnsureLen(s.samples, n)

	out := s.samples
	s.proc.ProcessFloat32(out, s.scratch)

	for i, v := range out {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}

	return 4 * n, nil
}
