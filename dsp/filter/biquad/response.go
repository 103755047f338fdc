package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) on the unit circle at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	zi := complex(math.Cos(w), -math.Sin(w)) // z⁻¹

	num := complex(c.B0, 0) + zi*(complex(c.B1, 0)+zi*complex(c.B2, 0))
	den := 1 + zi*(complex(c.A1, 0)+zi*complex(c.A2, 0))

	return num / den
}

// MagnitudeSquared returns |H(f)|² without complex arithmetic. Near DC
// the denominator cancels to a small value, so expect relative error
// around 1e-11 for low cutoffs.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2, a1, a2 := c.B0, c.B1, c.B2, c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns the section gain at freqHz in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Stable reports whether both poles of 1 + A1·z⁻¹ + A2·z⁻² lie strictly
// inside the unit circle (the stability triangle).
func (c *Coefficients) Stable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Response is the gain times the product of the active section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascade gain at freqHz in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

type impulseTarget interface {
	ProcessSample(x float64) float64
	Reset()
}

func impulse(p impulseTarget, n int) []float64 {
	ir := make([]float64, n)
	p.Reset()

	x := 1.0
	for i := range ir {
		ir[i] = p.ProcessSample(x)
		x = 0
	}

	return ir
}

// ImpulseResponse returns the first n samples of h[n]. The section's
// history is left as it was.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	defer s.SetState(saved)

	return impulse(s, n)
}

// ImpulseResponse returns the first n samples of the cascade's h[n],
// gain included. The chain's history is left as it was.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	defer c.SetState(saved)

	return impulse(c, n)
}
