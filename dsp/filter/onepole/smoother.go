package onepole

// Fixed tap weights of the smoother: input, then the three newest outputs.
const (
	smootherIn = 0.01
	smootherY1 = 0.2
	smootherY2 = 0.3
	smootherY3 = 0.49

	defaultSmootherAmp = 0.99
)

// Smoother is a fixed three-tap IIR: the weighted sum of the input and the
// three most recent outputs, scaled by Amp. The weights sum to 1, so the
// DC gain is Amp·0.01/(1-0.99·Amp).
type Smoother struct {
	amp float64
	y   [3]float64
}

// NewSmoother returns a smoother with the default 0.99 output scale.
func NewSmoother() *Smoother {
	return &Smoother{amp: defaultSmootherAmp}
}

// SetAmp sets the output scale. Values >= 1 make the filter unstable.
func (s *Smoother) SetAmp(amp float64) { s.amp = amp }

// Amp returns the output scale.
func (s *Smoother) Amp() float64 { return s.amp }

// ProcessSample filters one sample.
func (s *Smoother) ProcessSample(x float64) float64 {
	y := x*smootherIn + s.y[0]*smootherY1 + s.y[1]*smootherY2 + s.y[2]*smootherY3
	y *= s.amp

	s.y[2] = s.y[1]
	s.y[1] = s.y[0]
	s.y[0] = y

	return y
}

// Reset zeroes the output history.
func (s *Smoother) Reset() { s.y = [3]float64{} }
