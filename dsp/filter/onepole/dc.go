package onepole

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const defaultDCCoefficient = 0.01

// DCRemover subtracts a slow running average from the input.
//
// The average is updated after the subtraction, so the first output equals
// the first input.
type DCRemover struct {
	coeff  float64
	memory float64
}

// NewDCRemover returns a DC remover with the default 0.01 averaging weight.
func NewDCRemover() *DCRemover {
	return &DCRemover{coeff: defaultDCCoefficient}
}

// SetCoefficient sets the averaging weight in (0, 1).
func (d *DCRemover) SetCoefficient(c float64) error {
	if !core.IsFinite(c) || c <= 0 || c >= 1 {
		return fmt.Errorf("onepole: %w: dc coefficient must be in (0, 1): %v", core.ErrInvalidConfig, c)
	}

	d.coeff = c

	return nil
}

// Coefficient returns the averaging weight.
func (d *DCRemover) Coefficient() float64 { return d.coeff }

// ProcessSample removes the running average from x.
func (d *DCRemover) ProcessSample(x float64) float64 {
	y := x - d.memory
	d.memory = x*d.coeff + d.memory*(1-d.coeff)

	return y
}

// Reset zeroes the running average.
func (d *DCRemover) Reset() { d.memory = 0 }
