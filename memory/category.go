package memory

import (
	"reflect"
	"sync"

	"golang.org/x/exp/constraints"
)

// Category classifies element types by the effort needed to manage them.
type Category int8

const (
	// Trivial types are pointer-free and have no lifecycle hooks. Their memory
	// may be copied bitwise and needs no construction or destruction.
	Trivial Category = iota
	// NonTrivial types are managed element by element.
	NonTrivial
)

func (c Category) String() string {
	switch c {
	case Trivial:
		return "trivial"
	case NonTrivial:
		return "non-trivial"
	}
	return "invalid"
}

// Scalar is the constraint for element types which are trivial by construction.
// Managers for scalar types are selected at compile time, see NewScalar.
type Scalar interface {
	constraints.Integer | constraints.Float | constraints.Complex | ~bool
}

// categories caches the category of every type classified so far, keyed by
// reflect.Type.
var categories sync.Map

// Classify returns the category of element type T. The classification is done
// once per type; subsequent calls return a cached result.
func Classify[T any]() Category {
	t := typeOf[T]()
	if c, ok := categories.Load(t); ok {
		return c.(Category)
	}
	c := NonTrivial
	if pointerFree(t) && hooksFor[T]().empty() {
		c = Trivial
	}
	if prev, loaded := categories.LoadOrStore(t, c); loaded {
		return prev.(Category)
	}
	tracer().Debugf("classified %v as %s", t, c)
	return c
}

// pointerFree is true for types whose memory contains no references the garbage
// collector has to know about.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
