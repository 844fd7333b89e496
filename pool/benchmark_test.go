package pool

import (
	"context"
	"runtime"
	"testing"
)

// BenchmarkSubmitRTT measures the round trip of submitting a no-op task
// and waiting for its result on a single-worker pool, adapted from the
// teacher library's BenchmarkSubmitRTT.
func BenchmarkSubmitRTT(b *testing.B) {
	p, err := NewPool(1)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Shutdown()

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		future, err := Submit(ctx, p, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := future.Get(); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
}

// BenchmarkPoolThroughput measures maximum throughput using all
// available cores, adapted from the teacher library's
// BenchmarkPoolThroughput.
func BenchmarkPoolThroughput(b *testing.B) {
	numCPU := runtime.NumCPU()
	p, err := NewPool(numCPU)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Shutdown()

	ctx := context.Background()

	b.ResetTimer()
	futures := make([]*Future[struct{}], b.N)
	for i := 0; i < b.N; i++ {
		future, err := Submit(ctx, p, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		})
		if err != nil {
			b.Fatal(err)
		}
		futures[i] = future
	}
	for _, future := range futures {
		if _, err := future.Get(); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
}
