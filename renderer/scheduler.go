package renderer

import (
	"runtime"
	"sync"
	"time"

	"ssao-engine/core"
)

// Scheduler splits a pass into horizontal bands and runs one goroutine per
// band. Run returns once every band is done, which makes it the barrier
// between passes.
type Scheduler struct {
	workers int
}

// NewScheduler creates a scheduler. If workers is 0 or negative,
// GOMAXPROCS is used.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{workers: workers}
}

// Workers returns the configured worker count.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Bands splits rows evenly, never handing out an empty band. Rows that don't
// divide evenly go to the first bands.
func (s *Scheduler) Bands(rows int) []int {
	n := min(s.workers, rows)
	if n <= 0 {
		return nil
	}
	bands := make([]int, n)
	for i := range bands {
		bands[i] = rows / n
		if i < rows%n {
			bands[i]++
		}
	}
	return bands
}

// Run calls fn for every row of rect, spread over the workers. Each call
// gets a distinct row, so fn may write its row without locking.
func (s *Scheduler) Run(name string, rect core.Rect, fn func(y int)) PassStat {
	start := time.Now()
	stat := PassStat{Name: name}
	if rect.Empty() {
		return stat
	}

	bands := s.Bands(rect.Height)
	stat.Bands = make([]BandStat, len(bands))

	var wg sync.WaitGroup
	wg.Add(len(bands))
	y0 := rect.Y
	for i, rows := range bands {
		go func(worker, y0, rows int) {
			defer wg.Done()
			bandStart := time.Now()
			for y := y0; y < y0+rows; y++ {
				fn(y)
			}
			stat.Bands[worker] = BandStat{
				Worker:       worker,
				Rows:         rows,
				FramePercent: 100 * float32(rows) / float32(rect.Height),
				RenderTime:   time.Since(bandStart),
			}
		}(i, y0, rows)
		y0 += rows
	}
	wg.Wait()

	stat.RenderTime = time.Since(start)
	return stat
}
