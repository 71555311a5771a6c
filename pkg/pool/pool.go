// Package pool provides a typed wrapper around sync.Pool that resets objects
// on return and keeps usage counters.
//
//	buffers := pool.New(
//	    func() *bytes.Buffer { return new(bytes.Buffer) },
//	    func(b *bytes.Buffer) { b.Reset() },
//	)
//	buf := buffers.Get()
//	defer buffers.Put(buf)
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool is a type-safe object pool. It is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	keep  func(T) bool

	allocated atomic.Int64
	inUse     atomic.Int64
	gets      atomic.Int64
	dropped   atomic.Int64
}

// Stats is a snapshot of the pool counters
type Stats struct {
	// Allocated counts objects created by the factory
	Allocated int64
	// InUse counts objects handed out and not yet returned
	InUse int64
	// Gets counts calls to Get
	Gets int64
	// Dropped counts returned objects that were not kept
	Dropped int64
}

// New creates a pool. reset, if not nil, runs on every object passed to Put.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		p.allocated.Add(1)
		return newFn()
	}
	return p
}

// WithKeep sets a predicate deciding whether a returned object goes back
// into the pool, e.g. to drop oversized buffers. It returns p.
func (p *Pool[T]) WithKeep(keep func(T) bool) *Pool[T] {
	p.keep = keep
	return p
}

// Get retrieves an object, allocating one if the pool is empty
func (p *Pool[T]) Get() T {
	p.gets.Add(1)
	p.inUse.Add(1)
	return p.pool.Get().(T)
}

// Put resets obj and returns it to the pool
func (p *Pool[T]) Put(obj T) {
	p.inUse.Add(-1)
	if p.keep != nil && !p.keep(obj) {
		p.dropped.Add(1)
		return
	}
	if p.reset != nil {
		p.reset(obj)
	}
	p.pool.Put(obj)
}

// Stats returns the current counters
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Allocated: p.allocated.Load(),
		InUse:     p.inUse.Load(),
		Gets:      p.gets.Load(),
		Dropped:   p.dropped.Load(),
	}
}
