package core

// Processor transforms one input sample into one output sample.
//
// Implementations carry their recurrence state across calls, must not
// allocate, and must complete in constant time.
type Processor interface {
	ProcessSample(x float64) float64
}

// Generator produces one sample per call without an input.
type Generator interface {
	NextSample() float64
}

// Resetter clears internal history so that subsequent output matches a
// freshly constructed instance.
type Resetter interface {
	Reset()
}

// ProcessorFunc adapts an ordinary function to the Processor interface.
type ProcessorFunc func(x float64) float64

// ProcessSample calls f(x).
func (f ProcessorFunc) ProcessSample(x float64) float64 { return f(x) }

// ProcessInPlace runs p over buf, sample by sample, in order.
func ProcessInPlace(p Processor, buf []float64) {
	for i := range buf {
		buf[i] = p.ProcessSample(buf[i])
	}
}

// Fill writes successive generator output into buf.
func Fill(g Generator, buf []float64) {
	for i := range buf {
		buf[i] = g.NextSample()
	}
}

// Series is a statically typed two-stage cascade. Using it instead of a
// slice of Processor keeps the hot path free of interface dispatch when the
// concrete stage types are known.
type Series[A, B Processor] struct {
	First  A
	Second B
}

// ProcessSample feeds x through First, then Second.
func (s *Series[A, B]) ProcessSample(x float64) float64 {
	return s.Second.ProcessSample(s.First.ProcessSample(x))
}
