package rc

// Bandpass removes content below the highpass corner by subtracting an RC
// lowpass from the input, then smooths the remainder with a second RC
// lowpass at the upper corner. The two legs are configured independently.
type Bandpass struct {
	hp *Lowpass
	lp *Lowpass
}

// NewBandpass returns a band-pass with corners hpHz and lpHz.
func NewBandpass(sampleRate, hpHz, lpHz float64) (*Bandpass, error) {
	hp, err := NewLowpass(sampleRate, hpHz)
	if err != nil {
		return nil, err
	}

	lp, err := NewLowpass(sampleRate, lpHz)
	if err != nil {
		return nil, err
	}

	return &Bandpass{hp: hp, lp: lp}, nil
}

// SetFreqs reconfigures both corners. On error neither leg is changed.
func (b *Bandpass) SetFreqs(hpHz, lpHz float64) error {
	hpAlpha, lpAlpha := b.hp.alpha, b.lp.alpha
	hpCut, lpCut := b.hp.cutoffHz, b.lp.cutoffHz

	if err := b.hp.SetCutoff(hpHz); err != nil {
		return err
	}

	if err := b.lp.SetCutoff(lpHz); err != nil {
		b.hp.alpha, b.hp.cutoffHz = hpAlpha, hpCut
		b.lp.alpha, b.lp.cutoffHz = lpAlpha, lpCut

		return err
	}

	return nil
}

// SetSampleRate updates both legs.
func (b *Bandpass) SetSampleRate(sampleRate float64) error {
	if err := b.hp.SetSampleRate(sampleRate); err != nil {
		return err
	}

	return b.lp.SetSampleRate(sampleRate)
}

// HighpassHz returns the lower corner.
func (b *Bandpass) HighpassHz() float64 { return b.hp.cutoffHz }

// LowpassHz returns the upper corner.
func (b *Bandpass) LowpassHz() float64 { return b.lp.cutoffHz }

// ProcessSample filters one sample.
func (b *Bandpass) ProcessSample(x float64) float64 {
	hiPassed := x - b.hp.ProcessSample(x)
	return b.lp.ProcessSample(hiPassed)
}

// ProcessInPlace filters buf in place.
func (b *Bandpass) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = b.ProcessSample(buf[i])
	}
}

// Reset zeroes both legs.
func (b *Bandpass) Reset() {
	b.hp.Reset()
	b.lp.Reset()
}
