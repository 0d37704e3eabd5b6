package lazy

import "sync"

// Cell is a memoizing single-assignment value. The first Resolve call runs
// the supplied function and stores its result; every later call returns the
// stored value without invoking the function again.
type Cell[T any] struct {
	once  sync.Once
	value T
}

// Resolve returns the cell's value, computing it with fn exactly once
func (c *Cell[T]) Resolve(fn func() T) T {
	c.once.Do(func() {
		c.value = fn()
	})
	return c.value
}
