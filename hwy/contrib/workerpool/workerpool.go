// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for fanning
// independent pieces of numeric work out across goroutines.
//
// A Pool is created once and reused, so per-window work such as gathering
// denoising statistics does not pay goroutine spawn cost on every call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelForAtomic(len(windows), func(i int) {
//	    stats[i] = compute(windows[i])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines consuming tasks from a shared queue.
type Pool struct {
	numWorkers int
	tasks      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New starts a pool with numWorkers goroutines. If numWorkers <= 0, uses
// GOMAXPROCS. Workers live until Close.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan task, numWorkers),
	}
	for range numWorkers {
		go func() {
			for t := range p.tasks {
				t.fn()
				t.done.Done()
			}
		}()
	}
	return p
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers after queued tasks finish. Calling Close more than
// once is safe; a closed pool runs later calls on the caller's goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.tasks)
	})
}

// fanOut runs fn on up to workers pool goroutines and waits for all of them.
// It reports false, without running anything, when the work should stay on
// the calling goroutine.
func (p *Pool) fanOut(workers int, fn func()) bool {
	if workers <= 1 || p.closed.Load() {
		return false
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.tasks <- task{fn: fn, done: &wg}
	}
	wg.Wait()
	return true
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. Blocks until all ranges are done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	chunk := (n + workers - 1) / workers

	var next atomic.Int64
	ran := p.fanOut(workers, func() {
		start := int(next.Add(1)-1) * chunk
		if start < n {
			fn(start, min(start+chunk, n))
		}
	})
	if !ran {
		fn(0, n)
	}
}

// ParallelForAtomic calls fn(i) for every i in [0, n), with workers pulling
// the next index from a shared counter. Suits items of uneven cost, such as
// windows clipped at image borders. Blocks until all items are done.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	var next atomic.Int64
	ran := p.fanOut(min(p.numWorkers, n), func() {
		for {
			i := int(next.Add(1) - 1)
			if i >= n {
				return
			}
			fn(i)
		}
	})
	if !ran {
		for i := range n {
			fn(i)
		}
	}
}
