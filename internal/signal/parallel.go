package signal

import (
	"runtime"
	"sync"
)

// parallelThreshold is the sample count above which tones are evaluated in
// chunks across goroutines.
const parallelThreshold = 1 << 14

// parallelFor runs fn over [0, n) in contiguous chunks. Each index belongs to
// exactly one chunk, so writes by index keep their order.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
