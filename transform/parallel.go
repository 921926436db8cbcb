package transform

import (
	"runtime"
	"sync"
)

// parallelFor splits the outermost-dimension coordinate range [0, outer)
// into contiguous chunks and runs work on each chunk concurrently,
// joining all workers before returning. This is the parallel_for
// primitive the spec asks the transform engine to build on (§5):
// chunking the outermost Dim gives each goroutine a contiguous, disjoint
// slice of the output buffer to write, so no synchronization is needed
// between workers, mirroring the Concurrent/sync.WaitGroup pattern used
// elsewhere in this codebase's ancestry (gonum's fd package).
//
// Order across chunks is unspecified; within a chunk, work always walks
// its range in increasing order.
func parallelFor(outer int64, work func(begin, end int64)) {
	if outer <= 0 {
		return
	}
	nWorkers := runtime.GOMAXPROCS(0)
	if int64(nWorkers) > outer {
		nWorkers = int(outer)
	}
	if nWorkers <= 1 {
		work(0, outer)
		return
	}
	chunk := (outer + int64(nWorkers) - 1) / int64(nWorkers)
	var wg sync.WaitGroup
	for begin := int64(0); begin < outer; begin += chunk {
		end := begin + chunk
		if end > outer {
			end = outer
		}
		wg.Add(1)
		go func(begin, end int64) {
			defer wg.Done()
			work(begin, end)
		}(begin, end)
	}
	wg.Wait()
}
