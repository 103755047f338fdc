package scope

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// FloorDB is the lowest level reported by MagnitudeDB.
	FloorDB = -130.0

	minSize = 16
	maxSize = 1 << 16
	eps     = 1e-12
)

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig) error

type analyzerConfig struct {
	window window.Type
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		cfg.window = t
		return nil
	}
}

// Analyzer computes a windowed single-sided amplitude spectrum.
// A full-scale sine centred on a bin reads 1 (0 dB) at that bin.
type Analyzer struct {
	size       int
	sampleRate float64

	plan    *algofft.Plan[complex128]
	window  []float64
	winGain float64

	frame  []float64
	input  []complex128
	output []complex128
	mags   []float64
}

// NewAnalyzer returns an analyzer for frames of size samples. size must be
// a power of two in [16, 65536].
func NewAnalyzer(sampleRate float64, size int, opts ...AnalyzerOption) (*Analyzer, error) {
	if err := core.ValidateSampleRate("scope", sampleRate); err != nil {
		return nil, err
	}

	cfg := analyzerConfig{window: window.TypeHann}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if size < minSize || size > maxSize || bits.OnesCount(uint(size)) != 1 {
		return nil, fmt.Errorf("scope: %w: size must be a power of two in [%d, %d]: %d",
			core.ErrInvalidConfig, minSize, maxSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("scope: fft plan: %w", err)
	}

	win, err := window.Generate(cfg.window, size, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("scope: %w", err)
	}

	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, fmt.Errorf("scope: %w", err)
	}

	a := &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		window:     win,
		winGain:    gain,
		frame:      make([]float64, size),
		input:      make([]complex128, size),
		output:     make([]complex128, size),
		mags:       make([]float64, size/2+1),
	}

	return a, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of bins in a spectrum, size/2 + 1.
func (a *Analyzer) Bins() int { return len(a.mags) }

// BinHz returns the width of one bin in Hz.
func (a *Analyzer) BinHz() float64 { return a.sampleRate / float64(a.size) }

// Frequency returns the centre frequency of bin k.
func (a *Analyzer) Frequency(k int) float64 { return float64(k) * a.BinHz() }

// Magnitudes analyzes the last Size samples of src, zero-padding at the
// front when src is shorter, and returns the linear amplitude per bin.
// The returned slice is owned by the analyzer and overwritten by the next
// call.
func (a *Analyzer) Magnitudes(src []float64) ([]float64, error) {
	if len(src) > a.size {
		src = src[len(src)-a.size:]
	}

	pad := a.size - len(src)
	clear(a.frame[:pad])

	if len(src) > 0 {
		vecmath.MulBlock(a.frame[pad:], src, a.window[pad:])
	}

	for i, x := range a.frame {
		a.input[i] = complex(x, 0)
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return nil, fmt.Errorf("scope: fft: %w", err)
	}

	norm := float64(a.size) * math.Max(a.winGain, eps)

	last := len(a.mags) - 1
	for k := range a.mags {
		mag := cmplx.Abs(a.output[k]) / norm
		if k > 0 && k < last {
			mag *= 2
		}

		a.mags[k] = mag
	}

	return a.mags, nil
}

// MagnitudeDB writes the spectrum of src in dB, floored at FloorDB, into
// dst and returns it. dst is grown when it is shorter than Bins.
func (a *Analyzer) MagnitudeDB(dst, src []float64) ([]float64, error) {
	mags, err := a.Magnitudes(src)
	if err != nil {
		return nil, err
	}

	dst = core.EnsureLen(dst, len(mags))
	for k, m := range mags {
		dst[k] = math.Max(FloorDB, 20*math.Log10(math.Max(eps, m)))
	}

	return dst, nil
}

// PeakBin returns the bin with the largest magnitude in the most recent
// analysis, ignoring DC.
func (a *Analyzer) PeakBin() int {
	best := 1
	for k := 2; k < len(a.mags); k++ {
		if a.mags[k] > a.mags[best] {
			best = k
		}
	}

	return best
}
