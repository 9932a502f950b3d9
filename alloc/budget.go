package alloc

import (
	"sync"

	"github.com/pkg/errors"
)

// Budget limits the number of bytes in use from an underlying allocator.
// Allocations exceeding the limit fail with ErrOutOfMemory, without touching the
// underlying allocator.
//
// Budget accounts by the length of buffers: callers must deallocate buffers with
// the length they were allocated with.
type Budget[T any] struct {
	mu    sync.Mutex
	inner Allocator[T]
	limit int
	inUse int
}

var _ Allocator[int] = (*Budget[int])(nil)

// NewBudget wraps inner with a limit of maxBytes bytes in use.
// If inner is nil, a GoAllocator is used.
func NewBudget[T any](inner Allocator[T], maxBytes int) *Budget[T] {
	if inner == nil {
		inner = NewGoAllocator[T]()
	}
	assertThat(maxBytes >= 0, "negative budget %d", maxBytes)
	return &Budget[T]{inner: inner, limit: maxBytes}
}

// Allocate implements Allocator.
func (b *Budget[T]) Allocate(n int) ([]T, error) {
	size, err := bytesFor[T](n)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if size > b.limit-b.inUse {
		tracer().Debugf("budget: %d bytes requested, %d of %d in use", size, b.inUse, b.limit)
		return nil, errors.Wrapf(ErrOutOfMemory, "budget of %d bytes exhausted, requested %d", b.limit, size)
	}
	buf, err := b.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	b.inUse += size
	return buf, nil
}

// Deallocate implements Allocator.
func (b *Budget[T]) Deallocate(buf []T) {
	if buf == nil {
		return
	}
	size, _ := bytesFor[T](len(buf))
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inUse -= size
	if b.inUse < 0 {
		b.inUse = 0
	}
	b.inner.Deallocate(buf)
}

// InUse returns the number of bytes currently allocated.
func (b *Budget[T]) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inUse
}

// Release implements Releaser, forwarding to the underlying allocator.
func (b *Budget[T]) Release() {
	if r, ok := b.inner.(Releaser); ok {
		r.Release()
	}
}
