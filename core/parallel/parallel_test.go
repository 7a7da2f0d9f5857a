package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryItem(t *testing.T) {
	for _, items := range []int{0, 1, 7, 100, 1000} {
		visits := make([]int32, items)
		Parallelize(items, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&visits[i], 1)
			}
		})
		for i, count := range visits {
			if count != 1 {
				t.Errorf("items=%d: index %d visited %d times, want 1", items, i, count)
			}
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("sequential range = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("below threshold ran %d chunks, want 1", calls)
	}

	total := int32(0)
	ParallelizeWithThreshold(1000, 100, func(start, end int) {
		atomic.AddInt32(&total, int32(end-start))
	})
	if total != 1000 {
		t.Errorf("parallel path covered %d items, want 1000", total)
	}
}
