// Package pool is a typed sync.Pool that resets values on return.
package pool

import "sync"

type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New creates a pool. reset, if non-nil, runs on every value handed back via Put.
func New[T any](generate func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
		reset: reset,
	}
}

// NewHot creates a pool pre-filled with hotSize values.
func NewHot[T any](generate func() T, reset func(T), hotSize int) *Pool[T] {
	p := New(generate, reset)
	for i := 0; i < hotSize; i++ {
		p.pool.Put(generate())
	}
	return p
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		p.reset(value)
	}
	p.pool.Put(value)
}
