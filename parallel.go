package dds

import (
	"runtime"
	"sync"
)

// effectiveWorkers returns the worker count for n rows. Zero or negative
// means GOMAXPROCS.
func effectiveWorkers(workers, n int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return max(1, min(workers, n))
}

// parallelRows runs fn for every row in [0, n) split into contiguous
// chunks. The error of the lowest failing row is returned.
func parallelRows(n, workers int, fn func(row int) error) error {
	workers = effectiveWorkers(workers, n)
	if workers == 1 {
		for row := range n {
			if err := fn(row); err != nil {
				return err
			}
		}
		return nil
	}

	chunkSize := ceilDiv(n, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := range workers {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for row := start; row < end; row++ {
				if err := fn(row); err != nil {
					errs[w] = err
					return
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
