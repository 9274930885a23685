package lattice

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/jpfielding/lut.go/pkg/lut"
)

// Options configures sampling
type Options struct {
	Workers int // parallel workers (default: runtime.NumCPU())
	MaxSize int // size ceiling (default: MaxSize)
}

// DefaultOptions returns default sampling options
func DefaultOptions() *Options {
	return &Options{
		Workers: runtime.NumCPU(),
		MaxSize: MaxSize,
	}
}

func (o *Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Sample evaluates the colour pipeline for adj at every node of the identity
// lattice. Node results are clamped to [0,1].
func Sample(size int, adj lut.Adjustments, opts *Options) (*Lattice, error) {
	p, err := lut.NewPipeline(adj)
	if err != nil {
		return nil, err
	}
	return SampleFunc(size, p.Apply, opts)
}

// SampleFunc fills a lattice with fn applied to each node's identity colour.
// Blue slices are spread over the workers; each worker writes only its own
// slices, so no locking is needed and the output order does not depend on
// scheduling. fn must be safe for concurrent use.
func SampleFunc(size int, fn func(lut.RGB) lut.RGB, opts *Options) (*Lattice, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := CheckSize(size, opts.MaxSize); err != nil {
		return nil, err
	}
	l, err := New(size)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	workers := min(opts.workers(), size)
	slices := make(chan int, size)
	for b := 0; b < size; b++ {
		slices <- b
	}
	close(slices)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range slices {
				for g := 0; g < size; g++ {
					for r := 0; r < size; r++ {
						i := l.Index(r, g, b)
						l.SetNode(i, fn(l.Input(i)))
					}
				}
			}
		}()
	}
	wg.Wait()

	slog.Debug("Sampled lattice",
		slog.Int("size", size),
		slog.Int("nodes", l.Len()),
		slog.Int("workers", workers),
		slog.Duration("elapsed", time.Since(start)))
	return l, nil
}
