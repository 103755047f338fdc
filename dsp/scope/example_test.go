package scope_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/scope"
	"github.com/cwbudde/algo-synth/dsp/synth"
)

// A sine voice whose pitch falls on a bin centre shows up as a single peak.
func ExampleAnalyzer() {
	const sr = 11264 // 1024-point bins are 11 Hz wide

	p, err := synth.New(
		synth.WithSampleRate(sr),
		synth.WithSource(synth.SourceSine),
		synth.WithFilter(synth.FilterNone),
		synth.WithDither(0, 1),
	)
	if err != nil {
		panic(err)
	}

	buf := make([]float64, 4096)
	p.Process(buf)

	a, err := scope.NewAnalyzer(sr, 1024)
	if err != nil {
		panic(err)
	}

	mags, err := a.Magnitudes(buf)
	if err != nil {
		panic(err)
	}

	k := a.PeakBin()
	fmt.Printf("peak %.0f Hz, amplitude %.2f\n", a.Frequency(k), mags[k])
	// Output:
	// peak 352 Hz, amplitude 0.50
}

func ExampleAlign() {
	frame := []float64{0.3, -0.2, -0.6, 0.1, 0.7}
	fmt.Println(scope.Align(frame))
	// Output:
	// [0.1 0.7]
}
