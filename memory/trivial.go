package memory

import (
	"github.com/npillmayer/vecmem/alloc"
)

// trivial manages pointer-free element types without lifecycle hooks.
// Element memory is moved around with Go's built-in copy, which is a memmove
// and therefore safe for overlapping ranges.
type trivial[T any] struct {
	storage[T]
}

var _ Manager[int] = (*trivial[int])(nil)
var _ ByteFiller[int] = (*trivial[int])(nil)

func newTrivial[T any](a alloc.Allocator[T]) *trivial[T] {
	return &trivial[T]{storage: storage[T]{allocator: a}}
}

func (m *trivial[T]) Category() Category {
	return Trivial
}

// Construct is a no-op: allocated memory already is a valid trivial value.
func (m *trivial[T]) Construct(buf []T) error {
	return nil
}

func (m *trivial[T]) ConstructFill(buf []T, value T) error {
	fill(buf, value)
	return nil
}

// Destroy is a no-op.
func (m *trivial[T]) Destroy(buf []T) {}

func (m *trivial[T]) Copy(dst, src []T) {
	if sameStart(dst, src) {
		return
	}
	assertThat(len(dst) >= len(src), "copy of %d elements into range of %d", len(src), len(dst))
	copy(dst, src)
}

func (m *trivial[T]) Fill(dst []T, value T) {
	fill(dst, value)
}

func (m *trivial[T]) Move(dst, src []T) {
	if sameStart(dst, src) {
		return
	}
	assertThat(len(dst) >= len(src), "move of %d elements into range of %d", len(src), len(dst))
	copy(dst, src)
}

func (m *trivial[T]) ByteFill(dst []T, b byte) {
	fill(asBytes(dst), b)
}
