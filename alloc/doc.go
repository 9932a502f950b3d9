/*
Package alloc provides typed allocators for the raw storage of contiguous vectors.

An allocator hands out slices of element type T and takes them back. It does not
construct or destroy elements; that is the business of package memory, which owns an
allocator for the lifetime of a manager.

Allocators in this package may be stacked:

    a := alloc.NewBudget[Item](alloc.NewPoolAllocator[Item](16, 4096, 2), 1<<20)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package alloc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vecmem.alloc'.
func tracer() tracing.Trace {
	return tracing.Select("vecmem.alloc")
}
