package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "Zero items", items: 0},
		{name: "Single item", items: 1},
		{name: "Fewer items than cores", items: 3},
		{name: "Many items", items: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var count atomic.Int64
			Parallelize(tt.items, func(start, end int) {
				count.Add(int64(end - start))
			})
			if got := count.Load(); got != int64(tt.items) {
				t.Errorf("processed %d items, want %d", got, tt.items)
			}
		})
	}
}

func TestParallelizeNoOverlap(t *testing.T) {
	const items = 997 // Prime, so chunks never divide evenly

	visited := make([]int32, items)
	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&visited[i], 1)
		}
	})

	for i, v := range visited {
		if v != 1 {
			t.Errorf("item %d visited %d times, want exactly once", i, v)
		}
	}
}

func TestParallelizeWithThresholdRunsSequentially(t *testing.T) {
	// Below the threshold the callback receives the full range in one call
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("range = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("callback invoked %d times, want 1", calls)
	}
}

func TestParallelizeWithThresholdParallelizes(t *testing.T) {
	var count atomic.Int64
	ParallelizeWithThreshold(5000, 100, func(start, end int) {
		count.Add(int64(end - start))
	})
	if got := count.Load(); got != 5000 {
		t.Errorf("processed %d items, want 5000", got)
	}
}
