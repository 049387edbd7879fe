package particle

import "fmt"

// Pool is a stack of reusable instances backed by a growable slice.
//
// Acquire pops a free instance or builds one with the factory; Release pushes
// it back. The pool does not detect double releases and is not safe for
// concurrent use.
type Pool[T any] struct {
	free        []T
	n           int
	factory     func() (T, error)
	constructed int
}

// NewPool creates a pool whose backing store starts with room for capacity
// free instances. Nothing is constructed up front.
func NewPool[T any](capacity int, factory func() (T, error)) (*Pool[T], error) {
	if factory == nil {
		return nil, configErr("pool.factory", "must not be nil")
	}
	if capacity < 1 {
		capacity = 16
	}
	return &Pool[T]{
		free:    make([]T, capacity),
		factory: factory,
	}, nil
}

// Acquire returns a free instance, constructing a new one if none is available.
func (p *Pool[T]) Acquire() (T, error) {
	if p.n > 0 {
		p.n--
		v := p.free[p.n]
		var zero T
		p.free[p.n] = zero
		return v, nil
	}
	v, err := p.factory()
	if err != nil {
		var zero T
		Logger().Warn("pool factory failed", "error", err)
		return zero, fmt.Errorf("%w: %w", ErrPoolConstruction, err)
	}
	p.constructed++
	return v, nil
}

// Release returns v to the pool, doubling the backing store when it is full.
func (p *Pool[T]) Release(v T) {
	if p.n == len(p.free) {
		grown := make([]T, len(p.free)*2)
		copy(grown, p.free)
		p.free = grown
		Logger().Debug("pool grown", "cap", len(grown))
	}
	p.free[p.n] = v
	p.n++
}

// Free returns the number of instances waiting for reuse.
func (p *Pool[T]) Free() int {
	return p.n
}

// Cap returns the size of the backing store.
func (p *Pool[T]) Cap() int {
	return len(p.free)
}

// Constructed returns how many instances the factory has built.
func (p *Pool[T]) Constructed() int {
	return p.constructed
}
