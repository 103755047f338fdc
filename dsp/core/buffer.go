package core

// EnsureLen returns buf resliced to n elements when its capacity allows,
// otherwise a new zeroed slice of length n. Reused contents are kept.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) < n {
		return make([]T, n)
	}

	return buf[:n]
}
