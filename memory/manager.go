package memory

import (
	"github.com/npillmayer/vecmem/alloc"
	"github.com/pkg/errors"
)

// Manager provides the memory primitives for a vector of elements of type T.
//
// Ranges are slices, usually sub-slices of a buffer obtained by Allocate; the
// count of an operation is the length of its range. Copy and Move transfer
// len(src) elements and require len(dst) >= len(src).
type Manager[T any] interface {
	// Category reports the specialization of the manager.
	Category() Category
	// Allocator returns the allocator owned by the manager.
	Allocator() alloc.Allocator[T]

	// Allocate returns storage for count unconstructed elements. Failure wraps
	// alloc.ErrOutOfMemory.
	Allocate(count int) ([]T, error)
	// Deallocate returns *buf to the allocator and sets *buf to nil.
	// It is a no-op if *buf is nil. All elements must have been destroyed.
	Deallocate(buf *[]T)

	// Construct default-constructs all elements of buf. If construction of an
	// element fails, elements constructed so far are destroyed and a
	// *ConstructionError is returned.
	Construct(buf []T) error
	// ConstructFill constructs all elements of buf as copies of value, with the
	// same failure semantics as Construct.
	ConstructFill(buf []T, value T) error
	// Destroy destroys all elements of buf. Destroyed slots hold the zero value.
	Destroy(buf []T)

	// Copy assigns the elements of src to dst, from low to high. Both ranges
	// hold constructed elements and must not overlap, unless they start at the
	// same address, which makes Copy a no-op.
	Copy(dst, src []T)
	// Fill assigns value to every (constructed) element of dst.
	Fill(dst []T, value T)
	// Move assigns the elements of src to dst, where the ranges may overlap.
	Move(dst, src []T)

	// Release ends the lifecycle of the manager and its allocator.
	Release()
}

// ByteFiller is implemented by managers of trivial types.
type ByteFiller[T any] interface {
	// ByteFill sets every byte of the memory of dst to b.
	ByteFill(dst []T, b byte)
}

// ByteFill replicates b over every byte of the memory of dst. This is not a
// fill with a value: for elements wider than one byte the resulting value is the
// byte pattern repeated, e.g. 0x0101 for a uint16 and b = 1.
//
// ByteFill is available for trivial types only and returns ErrNotTrivial for any
// other manager.
func ByteFill[T any](m Manager[T], dst []T, b byte) error {
	bf, ok := m.(ByteFiller[T])
	if !ok {
		return errors.Wrapf(ErrNotTrivial, "cannot byte-fill with %s manager", m.Category())
	}
	bf.ByteFill(dst, b)
	return nil
}

// --- Creation --------------------------------------------------------------

// Option is a type to help initializing managers at creation time.
type Option[T any] struct {
	config func(settings[T]) settings[T]
}

type settings[T any] struct {
	allocator alloc.Allocator[T]
	category  Category
}

// WithAllocator hands an allocator to the manager. The manager takes ownership:
// releasing the manager releases the allocator.
//
// Use it like this:
//
//	m, err := memory.New[Item](memory.WithAllocator[Item](alloc.NewPoolAllocator[Item](8, 1024, 2)))
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	conf := func(s settings[T]) settings[T] {
		if a != nil {
			s.allocator = a
		}
		return s
	}
	return Option[T]{config: conf}
}

// WithCategory overrides the classification of T. Forcing NonTrivial is always
// possible; forcing Trivial for a non-trivial type makes New fail.
func WithCategory[T any](c Category) Option[T] {
	conf := func(s settings[T]) settings[T] {
		s.category = c
		return s
	}
	return Option[T]{config: conf}
}

// New creates a manager for element type T. The specialization is selected by
// the category of T (see Classify), unless overridden by WithCategory.
// Without WithAllocator, the manager creates its own alloc.GoAllocator.
func New[T any](opts ...Option[T]) (Manager[T], error) {
	natural := Classify[T]()
	s := settings[T]{category: natural}
	for _, option := range opts {
		s = option.config(s)
	}
	if s.allocator == nil {
		s.allocator = alloc.NewGoAllocator[T]()
	}
	switch s.category {
	case Trivial:
		if natural != Trivial {
			return nil, errors.Wrapf(ErrCategoryMismatch, "cannot treat %v as trivial", typeOf[T]())
		}
		return newTrivial[T](s.allocator), nil
	case NonTrivial:
		return newObjects[T](s.allocator), nil
	}
	return nil, errors.Wrapf(ErrCategoryMismatch, "unknown category %d", s.category)
}

// NewScalar creates a manager of category Trivial for a scalar type, without
// consulting reflection. Category options are ignored, and so are lifecycle hooks
// of named scalar types.
func NewScalar[T Scalar](opts ...Option[T]) Manager[T] {
	var s settings[T]
	for _, option := range opts {
		s = option.config(s)
	}
	if s.allocator == nil {
		s.allocator = alloc.NewGoAllocator[T]()
	}
	return newTrivial[T](s.allocator)
}

// Must panics if err is non-nil, otherwise returns m.
func Must[T any](m Manager[T], err error) Manager[T] {
	if err != nil {
		panic(err)
	}
	return m
}

// --- Storage ---------------------------------------------------------------

// storage implements the allocation part of a manager, which is the same for
// every category.
type storage[T any] struct {
	allocator alloc.Allocator[T]
}

func (s *storage[T]) Allocator() alloc.Allocator[T] {
	return s.allocator
}

func (s *storage[T]) Allocate(count int) ([]T, error) {
	buf, err := s.allocator.Allocate(count)
	if err != nil {
		tracer().Errorf("allocate %d: %v", count, err)
		return nil, errors.Wrapf(err, "memory: cannot allocate %d elements", count)
	}
	tracer().Debugf("allocated %d elements", count)
	return buf, nil
}

func (s *storage[T]) Deallocate(buf *[]T) {
	if buf == nil || *buf == nil {
		return
	}
	tracer().Debugf("deallocating %d elements", len(*buf))
	s.allocator.Deallocate(*buf)
	*buf = nil
}

func (s *storage[T]) Release() {
	tracer().Debugf("releasing allocator %T", s.allocator)
	if r, ok := s.allocator.(alloc.Releaser); ok {
		r.Release()
	}
}
