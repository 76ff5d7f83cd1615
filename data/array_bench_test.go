package data

import "testing"

type benchDatum struct {
	pos [3]float32
	vel [3]float32
	id  uint32
}

func Benchmark_AcquireRelease_SteadyState(b *testing.B) {
	a, err := New[benchDatum]("bench", 1024)
	if err != nil {
		b.Fatal(err)
	}

	// Half-full array with churn, the common case.
	handles := make([]Handle, 0, 512)
	for rangeIdx := 0; rangeIdx < 512; rangeIdx++ {
		h, _ := a.Acquire()
		handles = append(handles, h)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % len(handles)
		a.Release(handles[j])
		handles[j], _ = a.Acquire()
	}
}

func Benchmark_TryGet(b *testing.B) {
	a, err := New[benchDatum]("bench", 1024)
	if err != nil {
		b.Fatal(err)
	}
	h, _ := a.Acquire()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := a.TryGet(h); !ok {
			b.Fatal("handle went stale")
		}
	}
}

func Benchmark_Iterate_HalfFull(b *testing.B) {
	a, err := New[benchDatum]("bench", 1024)
	if err != nil {
		b.Fatal(err)
	}
	handles := make([]Handle, 0, 1024)
	for rangeIdx := 0; rangeIdx < 1024; rangeIdx++ {
		h, _ := a.Acquire()
		handles = append(handles, h)
	}
	for i := 1; i < len(handles); i += 2 {
		a.Release(handles[i])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		for it := a.Iter(); ; {
			if _, ok := it.Next(); !ok {
				break
			}
			n++
		}
		if n != 512 {
			b.Fatalf("expected 512 live, got %d", n)
		}
	}
}
