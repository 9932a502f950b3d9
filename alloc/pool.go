package alloc

import (
	"github.com/pkg/errors"
	"github.com/prometheus/prometheus/util/pool"
)

// PoolAllocator re-cycles buffers in buckets of exponentially growing capacity.
// It reduces the cost of allocations for vectors which grow and shrink repeatedly.
//
// Buffers are cleared on allocation and on deallocation, thus a recycled buffer
// never carries over elements (or references held by them) from earlier use.
// PoolAllocator is safe for concurrent use.
type PoolAllocator[T any] struct {
	pool     *pool.Pool
	min, max int
	factor   float64
}

var _ Allocator[int] = (*PoolAllocator[int])(nil)

// NewPoolAllocator creates a pooling allocator with buckets from minSize up to
// maxSize elements, each bucket being factor times the size of its predecessor.
// Requests exceeding maxSize are served, but not pooled.
//
// minSize and maxSize must be positive and factor must be greater than 1.
func NewPoolAllocator[T any](minSize, maxSize int, factor float64) *PoolAllocator[T] {
	assertThat(minSize > 0 && maxSize >= minSize, "invalid pool bucket range %d…%d", minSize, maxSize)
	assertThat(factor > 1, "invalid pool bucket factor %v", factor)
	p := &PoolAllocator[T]{min: minSize, max: maxSize, factor: factor}
	p.pool = p.buckets()
	return p
}

// isBucketSize is true if c is one of the bucket sizes, derived the same way
// pool.New derives them.
func (p *PoolAllocator[T]) isBucketSize(c int) bool {
	for s := p.min; s <= p.max; s = int(float64(s) * p.factor) {
		if s == c {
			return true
		}
	}
	return false
}

func (p *PoolAllocator[T]) buckets() *pool.Pool {
	return pool.New(p.min, p.max, p.factor, func(size int) interface{} {
		return make([]T, 0, size)
	})
}

// Allocate implements Allocator.
func (p *PoolAllocator[T]) Allocate(n int) (buf []T, err error) {
	if _, err = bytesFor[T](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return []T{}, nil
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(ErrOutOfMemory, "cannot allocate %d elements from pool: %v", n, r)
		}
	}()
	buf = p.pool.Get(n).([]T)
	if cap(buf) < n {
		tracer().Debugf("pool: dropping short buffer of capacity %d for %d elements", cap(buf), n)
		buf = make([]T, 0, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf, nil
}

// Deallocate implements Allocator. Only buffers with a capacity of exactly one
// of the bucket sizes are pooled; any other buffer (sub-slices, foreign or
// oversized buffers) is left to the garbage collector.
func (p *PoolAllocator[T]) Deallocate(buf []T) {
	if cap(buf) == 0 {
		return
	}
	clear(buf[:cap(buf)])
	if !p.isBucketSize(cap(buf)) {
		tracer().Debugf("pool: dropping buffer of capacity %d", cap(buf))
		return
	}
	p.pool.Put(buf[:0])
}

// Release implements Releaser. Pooled buffers are dropped; subsequent allocations
// start with an empty pool.
func (p *PoolAllocator[T]) Release() {
	tracer().Debugf("pool: releasing buckets %d…%d", p.min, p.max)
	p.pool = p.buckets()
}
