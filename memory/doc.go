/*
Package memory implements the memory management layer of contiguous, resizable
vectors.

A vector needs four groups of primitives: allocating and deallocating raw storage,
constructing and destroying elements within that storage, copying ranges of elements,
and moving ranges of elements within a buffer. This package offers them as a Manager,
specialized for the category of the element type:

■ Trivial element types (numbers, booleans, and arrays and structs thereof, without any
pointers and without lifecycle hooks) are handled with raw memory operations.
Construction and destruction are no-ops.

■ Non-trivial element types are handled element by element, honouring the lifecycle
hooks the type implements (Constructor, CopyConstructor, Assigner, Destructor).
Moves between overlapping ranges pick the direction which never overwrites
an element before it has been read.

The category is selected once, when the manager is created. NewScalar selects the
trivial specialization at compile time; New classifies the element type by reflection
and caches the result per type.

Every manager owns an allocator from package alloc. The manager does not share it
with other managers; its lifecycle ends with Manager.Release.

Managers are not safe for concurrent use on overlapping memory. Callers
(usually a vector) have to serialize access to a buffer.

Status

Ready for use by vector implementations. Ranges are Go slices, so counts are
implicit in the length of a slice.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package memory

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vecmem.memory'.
func tracer() tracing.Trace {
	return tracing.Select("vecmem.memory")
}
