// Command synthplay plays the synth voice in real time and maps keyboard
// keys to its parameters.
//
// Usage:
//
//	synthplay [flags]
//
// Each parameter has an up and a down key; Esc, Ctrl-C or Ctrl-D quits.
// Build with -tags headless to run the render loop without an audio device.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/synth"
)

func main() {
	sampleRate := flag.Int("sr", 44100, "sample rate in Hz")
	blockSize := flag.Int("block", 128, "block size in samples")
	source := flag.String("source", "harmonics", "source: harmonics|pulse|sine")
	filter := flag.String("filter", "moog", "filter: moog|butterworth-lowpass|butterworth-highpass|butterworth-bandpass|rc-bandpass|none")
	echo := flag.Bool("echo", false, "insert the feedback echo")
	duration := flag.Duration("duration", 0, "stop after this long (0 plays until quit)")
	flag.Parse()

	src, err := synth.ParseSource(*source)
	if err != nil {
		die("%v", err)
	}

	mode, err := synth.ParseFilterMode(*filter)
	if err != nil {
		die("%v", err)
	}

	hostOpts := []core.ProcessorOption{
		core.WithSampleRate(float64(*sampleRate)),
		core.WithBlockSize(*blockSize),
	}
	host := core.ApplyProcessorOptions(hostOpts...)

	opts := []synth.Option{
		synth.WithProcessorConfig(hostOpts...),
		synth.WithSource(src),
		synth.WithFilter(mode),
	}

	if *echo {
		opts = append(opts, synth.WithDefaultEcho())
	}

	proc, err := synth.New(opts...)
	if err != nil {
		die("failed to build processor: %v", err)
	}

	out, err := newPlayer(int(host.SampleRate), newStream(proc))
	if err != nil {
		die("failed to open audio output: %v", err)
	}
	defer out.Close()

	store := proc.Params()
	status := func(p synth.Params) { fmt.Fprintf(os.Stdout, "\r\x1b[K%s", formatStatus(p)) }
	cancel := store.Observe(status)
	defer cancel()

	quit := make(chan struct{})

	kb, err := startKeyboard(func(b byte) bool {
		if isQuitKey(b) {
			close(quit)
			return false
		}

		if name, delta, ok := lookupKey(b); ok {
			if _, err := store.Nudge(name, delta); err != nil {
				fmt.Fprintf(os.Stderr, "\r\nerror: %v\r\n", err)
			}
		}

		return true
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyboard disabled: %v\n", err)
	} else {
		defer kb.Stop()
	}

	fmt.Fprintf(os.Stdout, "%s\r\n", keyHelp())
	status(store.Load())
	out.Play()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(*duration)
	}

	select {
	case <-quit:
	case <-interrupt:
	case <-timeout:
	}

	fmt.Fprint(os.Stdout, "\r\n")

	if err := proc.LastConfigError(); err != nil {
		fmt.Fprintf(os.Stderr, "last configuration error: %v\n", err)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
