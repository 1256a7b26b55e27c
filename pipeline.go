package ngvgeom

import "sync"

// task runs fn over [0, size) split into one contiguous chunk per worker,
// and returns once every chunk is done.
func task(workersCount int, size int, fn func(i int)) {
	workersCount = max(DEFAULT_WORKERS, min(workersCount, size))
	if size == 0 {
		return
	}

	var wg sync.WaitGroup
	chunkSize := (size + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, size))
	}
	wg.Wait()
}
