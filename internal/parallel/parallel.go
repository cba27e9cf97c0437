// Package parallel provides fan-out helpers for running independent
// tapes concurrently.
//
// The engine itself is single-threaded; the unit of isolation is one
// tape per goroutine. These helpers split an index range across workers
// for embarrassingly parallel work such as per-sample gradients, where
// each index records and replays on its own tape.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work is split across goroutines.
type Config struct {
	Workers      int // Goroutines to fan out to.
	MinPerWorker int // Below Workers*MinPerWorker items, run sequentially.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		Workers:      runtime.NumCPU(),
		MinPerWorker: 1,
	}
}

// For executes f(i) for i in [0, n). When the range is large enough it
// is split into contiguous blocks, one goroutine each; otherwise it runs
// sequentially on the calling goroutine. f must not share a tape between
// indices that can land in different blocks.
func For(n int, cfg Config, f func(i int)) {
	if cfg.Workers <= 1 || n < cfg.Workers*max(cfg.MinPerWorker, 1) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	block := (n + cfg.Workers - 1) / cfg.Workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += block {
		end := min(start+block, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Sum executes f(i) for i in [0, n) and returns the sum of the results.
// Each goroutine accumulates a private partial; the partials are added
// in block order, so the result is deterministic for a fixed config.
func Sum(n int, cfg Config, f func(i int) float64) float64 {
	if cfg.Workers <= 1 || n < cfg.Workers*max(cfg.MinPerWorker, 1) {
		var total float64
		for i := 0; i < n; i++ {
			total += f(i)
		}
		return total
	}

	block := (n + cfg.Workers - 1) / cfg.Workers
	blocks := (n + block - 1) / block
	partials := make([]float64, blocks)
	var wg sync.WaitGroup
	for b := 0; b < blocks; b++ {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			end := min((b+1)*block, n)
			var part float64
			for i := b * block; i < end; i++ {
				part += f(i)
			}
			partials[b] = part
		}(b)
	}
	wg.Wait()

	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}
