// Package parallel provides a static parallel-for over contiguous index ranges.
package parallel

import (
	"runtime"
	"sync"
)

// Workers returns the number of execution units available to the process.
func Workers() int {
	return runtime.GOMAXPROCS(0)
}

// ForChunks splits [0, n) into at most workers contiguous chunks of nearly
// equal size and calls body(start, end) for each chunk on its own goroutine.
// It returns after every chunk has finished. With one chunk, body runs on the
// calling goroutine.
func ForChunks(n, workers int, body func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		body(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			body(s, e)
		}(start, end)
	}
	wg.Wait()
}
