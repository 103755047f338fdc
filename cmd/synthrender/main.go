// Command synthrender renders the synth voice to a 16-bit mono WAV file.
//
// Usage:
//
//	synthrender [flags]
//
// Examples:
//
//	synthrender -o voice.wav
//	synthrender -duration 4 -filter butterworth-lowpass -set f_octave=6 -set hcount=12
//	synthrender -source pulse -set pw=0.2 -echo -analyze
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-synth/dsp/filter/butterworth"
	"github.com/cwbudde/algo-synth/dsp/synth"
)

func main() {
	out := flag.String("o", "synth.wav", "output WAV path")
	sampleRate := flag.Int("sr", 44100, "sample rate in Hz")
	duration := flag.Float64("duration", 2, "length in seconds")
	blockSize := flag.Int("block", 128, "block size in samples")
	source := flag.String("source", "harmonics", "source: harmonics|pulse|sine")
	filter := flag.String("filter", "moog", "filter: moog|butterworth-lowpass|butterworth-highpass|butterworth-bandpass|rc-bandpass|none")
	legacy := flag.Bool("legacy-butterworth", false, "use the single-biquad Butterworth topology")
	sharpness := flag.Float64("sharpness", 1.2, "base Butterworth sharpness (> 1)")
	glide := flag.Float64("glide", 1, "cutoff glide coefficient in (0, 1]")
	dither := flag.Float64("dither", 0.01, "dither amplitude")
	seed := flag.Int64("seed", 1, "dither seed")
	dc := flag.Bool("dc", false, "insert a DC remover")
	echo := flag.Bool("echo", false, "insert the feedback echo")
	saturate := flag.Bool("saturate", false, "hard-clip the ladder output")
	analyze := flag.Bool("analyze", false, "print the dominant frequency of the last frame")

	var sets assignments
	flag.Var(&sets, "set", "parameter assignment name=value (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: synthrender [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders the synth voice offline to a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nParameters:\n")

		for _, s := range synth.Specs() {
			fmt.Fprintf(os.Stderr, "  %-9s %-16s default %-5v range [%v, %v]\n", s.Name, s.Label, s.Default, s.Min, s.Max)
		}
	}
	flag.Parse()

	if *duration <= 0 {
		die("duration must be > 0")
	}

	src, err := synth.ParseSource(*source)
	if err != nil {
		die("%v", err)
	}

	mode, err := synth.ParseFilterMode(*filter)
	if err != nil {
		die("%v", err)
	}

	params := synth.DefaultParams()
	for _, a := range sets {
		if err := params.Set(a.name, a.value); err != nil {
			die("-set %s: %v", a.name, err)
		}
	}

	opts := []synth.Option{
		synth.WithSampleRate(float64(*sampleRate)),
		synth.WithBlockSize(*blockSize),
		synth.WithParams(params),
		synth.WithSource(src),
		synth.WithFilter(mode),
		synth.WithButterworthSharpness(*sharpness),
		synth.WithCutoffGlide(*glide),
		synth.WithDither(*dither, *seed),
		synth.WithDCRemover(*dc),
		synth.WithSaturation(*saturate),
		synth.WithConfigErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}),
	}

	if *legacy {
		opts = append(opts, synth.WithButterworthTopology(butterworth.TopologyLegacySingle))
	}

	if *echo {
		opts = append(opts, synth.WithDefaultEcho())
	}

	p, err := synth.New(opts...)
	if err != nil {
		die("failed to build processor: %v", err)
	}

	samples := render(p, int(*duration*float64(*sampleRate)))

	if err := writeWAV(*out, samples, *sampleRate); err != nil {
		die("failed to write %s: %v", *out, err)
	}

	fmt.Printf("wrote %s: %d samples at %d Hz, peak %.3f\n", *out, len(samples), *sampleRate, peak(samples))

	if *analyze {
		hz, err := dominantFrequency(samples, float64(*sampleRate))
		if err != nil {
			die("analysis failed: %v", err)
		}

		fmt.Printf("dominant frequency: %.1f Hz\n", hz)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
