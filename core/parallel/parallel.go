// Package parallel provides chunked parallel execution for tree fitting and
// fold evaluation. Callers only read shared immutable inputs and write to
// disjoint output slots, so results are identical to a sequential run.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits items into contiguous chunks, one per available CPU,
// and runs fn(start, end) for each chunk concurrently. Returns after every
// chunk completes.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially over the whole range when
// items is at or below threshold, where goroutine overhead would dominate,
// and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
