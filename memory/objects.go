package memory

import (
	"github.com/npillmayer/vecmem/alloc"
)

// objects manages non-trivial element types, one element at a time.
type objects[T any] struct {
	storage[T]
	hooks hooks[T]
}

var _ Manager[string] = (*objects[string])(nil)

func newObjects[T any](a alloc.Allocator[T]) *objects[T] {
	return &objects[T]{
		storage: storage[T]{allocator: a},
		hooks:   hooksFor[T](),
	}
}

func (m *objects[T]) Category() Category {
	return NonTrivial
}

func (m *objects[T]) Construct(buf []T) error {
	var zero T
	for i := range buf {
		buf[i] = zero
		if m.hooks.construct == nil {
			continue
		}
		if err := m.hooks.construct(&buf[i]); err != nil {
			return m.unwind(buf, i, err)
		}
	}
	return nil
}

func (m *objects[T]) ConstructFill(buf []T, value T) error {
	var zero T
	for i := range buf {
		buf[i] = zero
		if err := m.copyConstruct(&buf[i], &value); err != nil {
			return m.unwind(buf, i, err)
		}
	}
	return nil
}

// unwind destroys buf[:failed] after construction of buf[failed] returned err.
func (m *objects[T]) unwind(buf []T, failed int, err error) error {
	tracer().Debugf("construction of element %d failed, destroying %d elements", failed, failed)
	var zero T
	buf[failed] = zero
	m.Destroy(buf[:failed])
	return &ConstructionError{Index: failed, Err: err}
}

// copyConstruct constructs *dst as a copy of *src. Without a CopyConstructor
// hook this is default construction followed by assignment.
func (m *objects[T]) copyConstruct(dst, src *T) error {
	if m.hooks.copyConstruct != nil {
		return m.hooks.copyConstruct(dst, src)
	}
	if m.hooks.construct != nil {
		if err := m.hooks.construct(dst); err != nil {
			return err
		}
	}
	m.assign(dst, src)
	return nil
}

// Destroy destroys elements from the highest index down.
func (m *objects[T]) Destroy(buf []T) {
	var zero T
	for i := len(buf) - 1; i >= 0; i-- {
		if m.hooks.destruct != nil {
			m.hooks.destruct(&buf[i])
		}
		buf[i] = zero
	}
}

func (m *objects[T]) assign(dst, src *T) {
	if m.hooks.assign != nil {
		m.hooks.assign(dst, src)
		return
	}
	*dst = *src
}

func (m *objects[T]) Copy(dst, src []T) {
	if sameStart(dst, src) {
		return
	}
	assertThat(len(dst) >= len(src), "copy of %d elements into range of %d", len(src), len(dst))
	for i := range src {
		m.assign(&dst[i], &src[i])
	}
}

func (m *objects[T]) Fill(dst []T, value T) {
	for i := range dst {
		m.assign(&dst[i], &value)
	}
}

// Move copies from the highest index down if dst starts within src, otherwise
// from the lowest index up. Either way no element of src is overwritten before
// it has been read.
func (m *objects[T]) Move(dst, src []T) {
	if sameStart(dst, src) {
		return
	}
	n := len(src)
	assertThat(len(dst) >= n, "move of %d elements into range of %d", n, len(dst))
	if startsWithin(dst, src) {
		for i := n - 1; i >= 0; i-- {
			m.assign(&dst[i], &src[i])
		}
		return
	}
	for i := 0; i < n; i++ {
		m.assign(&dst[i], &src[i])
	}
}
