package memory

// Lifecycle hooks are implemented by element types which need more than a bitwise
// copy of their memory. Any hook implemented on *T makes T a non-trivial type.
//
// A slot passed to a construction hook holds the zero value of T.

// Constructor is implemented by types with a default state other than the
// zero value. Construct may fail; the manager then unwinds the batch.
type Constructor interface {
	Construct() error
}

// CopyConstructor is implemented by types which need a deep copy when they are
// constructed from another instance. The receiver holds the zero value of T.
type CopyConstructor[T any] interface {
	CopyConstruct(src *T) error
}

// Assigner is implemented by types with custom assignment. The receiver is a
// constructed element.
type Assigner[T any] interface {
	Assign(src *T)
}

// Destructor is implemented by types which have to release resources when
// they go out of use.
type Destructor interface {
	Destruct()
}

// hooks holds the lifecycle hooks of T, resolved once per manager. A nil
// function means the default behaviour: zero value, Go assignment or nothing.
type hooks[T any] struct {
	construct     func(*T) error
	copyConstruct func(dst, src *T) error
	assign        func(dst, src *T)
	destruct      func(*T)
}

func hooksFor[T any]() hooks[T] {
	var h hooks[T]
	p := any(new(T))
	if _, ok := p.(Constructor); ok {
		h.construct = func(x *T) error {
			return any(x).(Constructor).Construct()
		}
	}
	if _, ok := p.(CopyConstructor[T]); ok {
		h.copyConstruct = func(dst, src *T) error {
			return any(dst).(CopyConstructor[T]).CopyConstruct(src)
		}
	}
	if _, ok := p.(Assigner[T]); ok {
		h.assign = func(dst, src *T) {
			any(dst).(Assigner[T]).Assign(src)
		}
	}
	if _, ok := p.(Destructor); ok {
		h.destruct = func(x *T) {
			any(x).(Destructor).Destruct()
		}
	}
	return h
}

func (h hooks[T]) empty() bool {
	return h.construct == nil && h.copyConstruct == nil && h.assign == nil && h.destruct == nil
}
