// Command bwinfo prints Butterworth designs derived from pass/stop
// specifications or from cutoff/sharpness controls.
//
// Usage:
//
//	bwinfo [flags] [design ...]
//
// A design is lp:<cutoff>, hp:<cutoff> or <fpass>:<fstop>. Without
// arguments it prints the lowpass and highpass wrappers at the synth's
// default cutoff.
//
// Examples:
//
//	bwinfo lp:1000 hp:1000
//	bwinfo -sharpness 3 lp:440
//	bwinfo -pass 0.9 -stop 0.1 1000:2000
//	bwinfo -legacy -sections 1000:2000
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-synth/dsp/filter/butterworth"
)

var defaultDesigns = []string{"lp:352", "hp:352", "lp:1000", "hp:1000"}

func main() {
	sampleRate := flag.Float64("sr", 44100, "sample rate in Hz")
	sharpness := flag.Float64("sharpness", butterworth.DefaultSharpness, "sharpness for lp:/hp: designs (> 1)")
	pass := flag.Float64("pass", butterworth.PassTransmission, "pass-band transmission for fpass:fstop designs")
	stop := flag.Float64("stop", butterworth.StopTransmission, "stop-band transmission for fpass:fstop designs")
	legacy := flag.Bool("legacy", false, "use the single-biquad topology")
	sections := flag.Bool("sections", false, "print the biquad coefficients of every design")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bwinfo [flags] [design ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints Butterworth order, cutoff and edge attenuation.\n")
		fmt.Fprintf(os.Stderr, "A design is lp:<cutoff>, hp:<cutoff> or <fpass>:<fstop>.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bwinfo lp:1000 hp:1000\n")
		fmt.Fprintf(os.Stderr, "  bwinfo -pass 0.9 -stop 0.1 1000:2000\n")
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = defaultDesigns
	}

	topology := butterworth.TopologyCascade
	if *legacy {
		topology = butterworth.TopologyLegacySingle
	}

	var rows []row

	for _, arg := range args {
		spec, err := parseDesign(arg, *sharpness, *pass, *stop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}

		r, err := analyze(arg, spec, *sampleRate, topology)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", arg, err)
			continue
		}

		rows = append(rows, r)
	}

	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "error: no valid designs\n")
		os.Exit(1)
	}

	printTable(rows, *sections)
}

func printTable(rows []row, withSections bool) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Design\tKind\tOrder\tCutoff [Hz]\tSections\tPass [dB]\tStop [dB]\tStable\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	if _, err := fmt.Fprintf(tw, "------\t----\t-----\t-----------\t--------\t---------\t---------\t------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%v\t%d\t%.3f\t%d\t%.2f\t%.2f\t%v\n",
			r.label, r.design.Kind, r.design.Order, r.design.CutoffHz,
			len(r.design.Sections()), r.passDB, r.stopDB, r.stable,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}

	if !withSections {
		return
	}

	for _, r := range rows {
		fmt.Printf("\n%s\n", r.label)

		for i, c := range r.design.Sections() {
			fmt.Printf("  %2d  b=[% .12e % .12e % .12e]  a=[1 % .12e % .12e]\n", i, c.B0, c.B1, c.B2, c.A1, c.A2)
		}
	}
}
