package core

import (
	"fmt"
	"math"
)

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clip hard-limits x to [-1, 1].
func Clip(x float64) float64 {
	if x > 1 {
		return 1
	}

	if x < -1 {
		return -1
	}

	return x
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize returns x, or 0 when x is not finite.
func Sanitize(x float64) float64 {
	if !IsFinite(x) {
		return 0
	}

	return x
}

// ValidateSampleRate checks that sampleRate is finite and positive.
func ValidateSampleRate(pkg string, sampleRate float64) error {
	if !IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("%s: %w: sample rate must be > 0 and finite: %v", pkg, ErrInvalidConfig, sampleRate)
	}

	return nil
}

// ValidateRange checks that value is finite and inside [min, max].
func ValidateRange(pkg, name string, value, min, max float64) error {
	if !IsFinite(value) {
		return fmt.Errorf("%s: %w: %s must be finite: %v", pkg, ErrInvalidConfig, name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("%s: %w: %s must be in [%g, %g]: %g", pkg, ErrInvalidConfig, name, min, max, value)
	}

	return nil
}

// OctaveToHz maps an octave number to a frequency: baseHz * 2^octave.
func OctaveToHz(baseHz, octave float64) float64 {
	return baseHz * math.Exp2(octave)
}
