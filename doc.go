/*
Package vecmem is the memory layer beneath contiguous, growable vectors.

Vectors implemented on top of Go slices usually rely on the runtime for everything:
allocation, zeroing, copying. Element types which own resources, or have a default
state other than their zero value, need more: they have to be constructed and
destroyed at the right moments, and shifting elements within a buffer must never
read an element after it has been overwritten.

Sub-package memory offers these primitives, specialized for trivial and non-trivial
element types. Sub-package alloc provides the allocators a memory manager draws its
storage from.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vecmem
