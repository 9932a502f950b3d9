package memory

import (
	"fmt"
	"unsafe"

	"github.com/npillmayer/vecmem/alloc"
)

// --- Ranges ----------------------------------------------------------------

// sameStart is true if a and b are non-empty and start at the same address.
func sameStart[T any](a, b []T) bool {
	return len(a) > 0 && len(b) > 0 && unsafe.SliceData(a) == unsafe.SliceData(b)
}

// startsWithin is true if dst starts after the start of src, but before its end.
// Moving src to dst element by element from low to high would then overwrite
// elements of src before they are read.
func startsWithin[T any](dst, src []T) bool {
	if len(dst) == 0 || len(src) == 0 {
		return false
	}
	size := alloc.ElementSize[T]()
	if size == 0 {
		return false
	}
	d := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	s := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	return d > s && d < s+uintptr(len(src))*size
}

// asBytes views the memory of buf as bytes. Only valid for pointer-free T.
func asBytes[T any](buf []T) []byte {
	size := alloc.ElementSize[T]()
	if len(buf) == 0 || size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(buf))), uintptr(len(buf))*size)
}

// fill sets every element of s to v, doubling the initialized prefix with
// each copy.
func fill[E any](s []E, v E) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("memory: "+msg, msgargs...)
		panic(msg)
	}
}
