package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=44100 blockSize=256
}

func ExampleEnsureLen() {
	scratch := make([]float64, 0, 256)
	for _, n := range []int{128, 64, 512} {
		scratch = core.EnsureLen(scratch, n)
		fmt.Println(len(scratch), cap(scratch))
	}

	// Output:
	// 128 256
	// 64 256
	// 512 512
}

func ExampleOctaveToHz() {
	for _, oct := range []float64{0, 5, 9} {
		fmt.Printf("%.0f ", core.OctaveToHz(11, oct))
	}
	fmt.Println()

	// Output:
	// 11 352 5632
}
