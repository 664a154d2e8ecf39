package wire

import (
	"testing"
)

// BenchmarkWriter benchmarks a reused writer against a fresh writer per operation
func BenchmarkWriter(b *testing.B) {
	values := []int32{1, 2, 3}

	put := func(w *Writer) {
		w.PutFloat32(0.3)
		_ = w.PutString("TEST")
		_ = w.PutInt32Array(values)
		w.PutInt32(1)
		w.PutInt32(2)
	}

	b.Run("Reused", func(b *testing.B) {
		w := NewWriter()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			w.Reset()
			put(w)
		}
	})

	b.Run("Fresh", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			put(NewWriter())
		}
	})

	b.Run("Appending", func(b *testing.B) {
		w := NewWriter()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			put(w)
		}
		b.ReportMetric(float64(w.Capacity()), "capacity")
	})
}

// BenchmarkReader benchmarks decoding the sequence produced in BenchmarkWriter
func BenchmarkReader(b *testing.B) {
	w := NewWriter()
	w.PutFloat32(0.3)
	_ = w.PutString("TEST")
	_ = w.PutInt32Array([]int32{1, 2, 3})
	data := w.CopyData()

	r := NewReader(nil)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.SetSource(data)
		if _, err := r.GetFloat32(); err != nil {
			b.Fatalf("Failed to get float: %v", err)
		}
		if _, err := r.GetString(); err != nil {
			b.Fatalf("Failed to get string: %v", err)
		}
		if _, err := r.GetInt32Array(); err != nil {
			b.Fatalf("Failed to get array: %v", err)
		}
	}
}
