package butterworth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

// MaxOrder is the highest filter order a design may reach. Specifications
// that need more are rejected.
const MaxOrder = 64

const maxSections = MaxOrder / 2

// Kind is the response type of a design.
type Kind int

const (
	// KindLowpass passes frequencies below the cutoff.
	KindLowpass Kind = iota
	// KindHighpass passes frequencies above the cutoff.
	KindHighpass
)

func (k Kind) String() string {
	switch k {
	case KindLowpass:
		return "lowpass"
	case KindHighpass:
		return "highpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Topology selects how the pole pairs of a design become biquad sections.
type Topology int

const (
	// TopologyCascade realizes all order/2 pole pairs as cascaded sections.
	TopologyCascade Topology = iota
	// TopologyLegacySingle keeps only the section of the pole pair nearest
	// the unit circle.
	TopologyLegacySingle
)

func (t Topology) String() string {
	switch t {
	case TopologyCascade:
		return "cascade"
	case TopologyLegacySingle:
		return "legacy-single"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Spec is a pass/stop band specification.
type Spec struct {
	PassHz float64 // pass-band edge
	StopHz float64 // stop-band edge
	Pass   float64 // minimum pass-band transmission, (0, 1)
	Stop   float64 // maximum stop-band transmission, (0, 1)
}

// Validate checks the specification against sampleRate. The returned error
// wraps core.ErrInvalidConfig and names the violated condition.
func (s Spec) Validate(sampleRate float64) error {
	if err := core.ValidateSampleRate("butterworth", sampleRate); err != nil {
		return err
	}

	nyquist := 0.5 * sampleRate

	if !(s.PassHz > 0 && s.PassHz < nyquist) {
		return fmt.Errorf("butterworth: %w: fpass must be in (0, %g): %v", core.ErrInvalidConfig, nyquist, s.PassHz)
	}

	if !(s.StopHz > 0 && s.StopHz < nyquist) {
		return fmt.Errorf("butterworth: %w: fstop must be in (0, %g): %v", core.ErrInvalidConfig, nyquist, s.StopHz)
	}

	if s.PassHz == s.StopHz {
		return fmt.Errorf("butterworth: %w: fpass and fstop must differ: %v", core.ErrInvalidConfig, s.PassHz)
	}

	if !(s.Pass > 0 && s.Pass < 1) {
		return fmt.Errorf("butterworth: %w: hpass must be in (0, 1): %v", core.ErrInvalidConfig, s.Pass)
	}

	if !(s.Stop > 0 && s.Stop < 1) {
		return fmt.Errorf("butterworth: %w: hstop must be in (0, 1): %v", core.ErrInvalidConfig, s.Stop)
	}

	return nil
}

// Design is the result of a Butterworth design: order, cutoff and the
// biquad sections realizing it. A Design is a plain value; computing one
// does not allocate.
type Design struct {
	Kind     Kind
	Order    int
	CutoffHz float64

	sections    [maxSections]biquad.Coefficients
	numSections int
}

// Sections returns the biquad sections in processing order.
func (d *Design) Sections() []biquad.Coefficients {
	return d.sections[:d.numSections]
}

// NewDesign validates spec and computes the design at sampleRate.
func NewDesign(spec Spec, sampleRate float64, topology Topology) (Design, error) {
	if err := spec.Validate(sampleRate); err != nil {
		return Design{}, err
	}

	if topology != TopologyCascade && topology != TopologyLegacySingle {
		return Design{}, fmt.Errorf("butterworth: %w: unknown topology: %d", core.ErrInvalidConfig, int(topology))
	}

	lowpass := spec.PassHz < spec.StopHz
	d := 1 / spec.Stop
	e := math.Sqrt(1/(spec.Pass*spec.Pass) - 1)
	stop := math.Sqrt(d*d - 1)

	nf := math.Floor(math.Abs(math.Log(e/stop)/math.Log(spec.PassHz/spec.StopHz))) + 1
	if !core.IsFinite(nf) || nf > MaxOrder {
		return Design{}, fmt.Errorf("butterworth: %w: required order exceeds %d: %v", core.ErrInvalidConfig, MaxOrder, nf)
	}

	n := int(nf)
	if n%2 != 0 {
		n++
	}

	o := 1 / float64(n)
	if lowpass {
		o = -o
	}

	out := Design{
		Kind:     KindHighpass,
		Order:    n,
		CutoffHz: spec.StopHz * math.Pow(stop, o),
	}
	if lowpass {
		out.Kind = KindLowpass
	}

	w0 := 2 * math.Pi * out.CutoffHz / sampleRate
	c := math.Cos(w0)
	sinW0 := math.Sin(w0)

	// Pole pairs run from the lowest Q (k = n/2) to the highest (k = 1).
	first := n / 2
	if topology == TopologyLegacySingle {
		first = 1
	}

	for k := first; k >= 1; k-- {
		q := -0.5 / math.Cos(math.Pi*float64(2*k+n-1)/float64(2*n))
		r := sinW0 / (2 * q)
		out.sections[out.numSections] = sectionFor(lowpass, c, r)
		out.numSections++
	}

	return out, nil
}

func sectionFor(lowpass bool, c, r float64) biquad.Coefficients {
	var b0, b1 float64
	if lowpass {
		b1 = (1 - c) / (1 + r)
		b0 = 0.5 * b1
	} else {
		b1 = -(1 + c) / (1 + r)
		b0 = -0.5 * b1
	}

	return biquad.Coefficients{
		B0: b0,
		B1: b1,
		B2: b0,
		A1: -2 * c / (1 + r),
		A2: (1 - r) / (1 + r),
	}
}
