package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Type selects a window shape.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns length coefficients of window t. It returns an error
// for a non-positive length or an unknown type.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window: %w: size must be > 0: %d", core.ErrInvalidConfig, length)
	}

	if t < TypeRectangular || t > TypeBlackman {
		return nil, fmt.Errorf("window: %w: unknown type: %d", core.ErrInvalidConfig, int(t))
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = eval(t, position(i, length, cfg.periodic))
	}

	return out, nil
}

// Hann is shorthand for Generate(TypeHann, size, opts...).
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...)
}

// CoherentGain returns the mean of coeffs, the gain a window applies to a
// bin-centred tone.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, fmt.Errorf("window: %w: empty coefficients", core.ErrInvalidConfig)
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	g := sum / float64(len(coeffs))
	if g == 0 {
		return 0, fmt.Errorf("window: %w: coherent gain is zero", core.ErrInvalidConfig)
	}

	return g, nil
}

func eval(t Type, x float64) float64 {
	c1 := math.Cos(2 * math.Pi * x)

	switch t {
	case TypeHann:
		return 0.5 - 0.5*c1
	case TypeHamming:
		return 0.54 - 0.46*c1
	case TypeBlackman:
		return 0.42 - 0.5*c1 + 0.08*math.Cos(4*math.Pi*x)
	default:
		return 1
	}
}

// position maps sample n to [0, 1]; the periodic form never reaches 1.
func position(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
