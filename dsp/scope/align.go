package scope

// RisingZeroCrossing returns the first index i > 0 where buf[i-1] < 0 and
// buf[i] >= 0. ok is false when the buffer never crosses upward.
func RisingZeroCrossing(buf []float64) (i int, ok bool) {
	for i = 1; i < len(buf); i++ {
		if buf[i-1] < 0 && buf[i] >= 0 {
			return i, true
		}
	}

	return 0, false
}

// Align returns buf starting at its first rising zero crossing, or buf
// unchanged when there is none. The result aliases buf.
func Align(buf []float64) []float64 {
	if i, ok := RisingZeroCrossing(buf); ok {
		return buf[i:]
	}

	return buf
}

// AlignTo copies the aligned view of src into dst and zero-fills the
// remainder of dst. It returns the number of samples copied.
func AlignTo(dst, src []float64) int {
	n := copy(dst, Align(src))
	clear(dst[n:])

	return n
}
