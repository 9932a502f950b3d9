package alloc

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrOutOfMemory is the cause of every allocation failure reported by an allocator
// of this package. Test for it with errors.Is.
var ErrOutOfMemory = errors.New("out of memory")

// Allocator hands out raw storage for n elements of type T.
//
// Allocate returns a slice of length and capacity n. Elements are zero, i.e. not yet
// constructed. An Allocator must report failure with an error wrapping ErrOutOfMemory
// and must never return a partial buffer.
//
// Deallocate takes back a buffer obtained from Allocate. Deallocating a nil buffer
// is a no-op.
//
// Allocators drawing from the Go heap can only report requests which are invalid
// or exceed the platform's maximum allocation size. If a request is valid but the
// process runs out of memory while serving it, the Go runtime aborts the program
// with a fatal error; no allocator can turn this into an error value.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(buf []T)
}

// Releaser is implemented by allocators which hold on to resources beyond the
// buffers they hand out. Release ends the lifecycle of the allocator.
type Releaser interface {
	Release()
}

// --- Heap allocator --------------------------------------------------------

// GoAllocator allocates from the Go heap. It is safe for concurrent use.
type GoAllocator[T any] struct{}

// NewGoAllocator creates an allocator using the Go heap.
func NewGoAllocator[T any]() *GoAllocator[T] {
	return &GoAllocator[T]{}
}

var _ Allocator[int] = (*GoAllocator[int])(nil)

// Allocate implements Allocator. Requests the runtime refuses to serve (exceeding
// the maximum allocation size of the platform) are reported as ErrOutOfMemory.
// Exhausting the memory of the process is fatal, see Allocator.
func (a *GoAllocator[T]) Allocate(n int) (buf []T, err error) {
	if _, err = bytesFor[T](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return []T{}, nil
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(ErrOutOfMemory, "cannot allocate %d elements: %v", n, r)
		}
	}()
	return make([]T, n), nil
}

// Deallocate implements Allocator. Storage is left to the garbage collector.
func (a *GoAllocator[T]) Deallocate(buf []T) {}

// --- Helpers ---------------------------------------------------------------

// ElementSize returns the size in bytes of a single element of type T.
func ElementSize[T any]() uintptr {
	var x T
	return unsafe.Sizeof(x)
}

// bytesFor calculates the number of bytes n elements of T occupy, checking for
// negative counts and overflow.
func bytesFor[T any](n int) (int, error) {
	if n < 0 {
		return 0, errors.Wrapf(ErrOutOfMemory, "cannot allocate %d elements", n)
	}
	size := ElementSize[T]()
	if size == 0 {
		return 0, nil
	}
	if uintptr(n) > uintptr(math.MaxInt)/size {
		return 0, errors.Wrapf(ErrOutOfMemory, "allocation of %d elements of %d bytes overflows", n, size)
	}
	return n * int(size), nil
}
