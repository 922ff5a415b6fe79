package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestForChunks(t *testing.T) {
	var counter int64
	n := 1000

	ForChunks(n, 8, func(start, end int) {
		atomic.AddInt64(&counter, int64(end-start))
	})

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForChunks_DisjointCoverage(t *testing.T) {
	tests := []struct {
		n, workers int
	}{
		{1, 4},
		{7, 3},
		{16, 16},
		{17, 4},
		{100, 1},
		{5, 0},
	}

	for _, tt := range tests {
		hits := make([]int32, tt.n)
		ForChunks(tt.n, tt.workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("n=%d workers=%d: index %d visited %d times", tt.n, tt.workers, i, h)
			}
		}
	}
}

func TestForChunks_ChunkCount(t *testing.T) {
	var mu sync.Mutex
	var chunks [][2]int

	ForChunks(10, 3, func(start, end int) {
		mu.Lock()
		chunks = append(chunks, [2]int{start, end})
		mu.Unlock()
	})

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
}

func TestForChunks_Empty(t *testing.T) {
	called := false
	ForChunks(0, 4, func(_, _ int) { called = true })
	if called {
		t.Error("body called for empty range")
	}
}

func TestWorkers(t *testing.T) {
	if Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", Workers())
	}
}
