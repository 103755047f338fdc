package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// It is used for higher-order filters where each second-order section
// feeds into the next.
type Chain struct {
	sections []Section
	gain     float64
}

// chainConfig holds options for NewChain.
type chainConfig struct {
	gain     float64
	capacity int
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets an overall gain applied to the input before cascading.
// Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// WithCapacity reserves room for n sections so later UpdateCoefficients
// calls with up to n sections do not allocate.
func WithCapacity(n int) ChainOption {
	return func(cfg *chainConfig) { cfg.capacity = n }
}

// NewChain creates a cascade from zero or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	capacity := max(cfg.capacity, len(coeffs))

	c := &Chain{
		sections: make([]Section, len(coeffs), capacity),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades input through all sections in order.
// If gain != 1, the input is scaled before the first section.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per full biquad section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of active biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Capacity returns the number of sections that fit without reallocation.
func (c *Chain) Capacity() int {
	return cap(c.sections)
}

// Gain returns the current input gain applied before cascading.
func (c *Chain) Gain() float64 { return c.gain }

// SetGain updates the input gain applied before cascading.
func (c *Chain) SetGain(g float64) { c.gain = g }

// UpdateCoefficients replaces the filter coefficients and gain.
//
// Sections that stay active keep their history, avoiding the output
// discontinuity a fresh chain would cause. Sections that become active are
// reset explicitly, so stale history from an earlier, longer design never
// leaks into the output. No allocation happens while the new section
// count fits in Capacity.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients, gain float64) {
	c.gain = gain

	prev := len(c.sections)
	n := len(coeffs)

	if n > cap(c.sections) {
		grown := make([]Section, n)
		copy(grown, c.sections)
		c.sections = grown
	} else {
		c.sections = c.sections[:n]
	}

	for i := prev; i < n; i++ {
		c.sections[i].Reset()
	}

	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Section returns a pointer to the i-th section for inspection or modification.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section histories.
func (c *Chain) State() []State {
	states := make([]State, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section states.
// Extra entries are ignored; missing entries leave sections untouched.
func (c *Chain) SetState(states []State) {
	for i := range c.sections {
		if i >= len(states) {
			return
		}

		c.sections[i].SetState(states[i])
	}
}
