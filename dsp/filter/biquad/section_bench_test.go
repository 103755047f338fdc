package biquad

import "testing"

func BenchmarkSectionProcessSample(b *testing.B) {
	s := NewSection(rbjLowpass())
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s.ProcessSample(float64(i&1) - 0.5)
	}
}

func BenchmarkSectionProcessBlock(b *testing.B) {
	s := NewSection(rbjLowpass())
	buf := make([]float64, 512)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))

	for i := 0; i < b.N; i++ {
		s.ProcessBlock(buf)
	}
}
