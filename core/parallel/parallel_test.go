package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndex(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "empty", items: 0},
		{name: "single item", items: 1},
		{name: "fewer items than cores", items: 3},
		{name: "many items", items: 10007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := make([]int32, tt.items)
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})

			for i, count := range visits {
				if count != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, count)
				}
			}
		})
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// At or below the threshold the callback runs once over the full range.
	calls := 0
	ParallelizeWithThreshold(10, 10, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("range = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	// Above the threshold every index is still covered exactly once.
	var total int64
	ParallelizeWithThreshold(1000, 10, func(start, end int) {
		atomic.AddInt64(&total, int64(end-start))
	})
	if total != 1000 {
		t.Errorf("covered %d items, want 1000", total)
	}
}
