package memory

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrConstruction is matched by errors from Construct and ConstructFill if
	// an element failed to construct.
	ErrConstruction = errors.New("element construction failed")
	// ErrCategoryMismatch is returned when a manager of category Trivial is
	// requested for a non-trivial type.
	ErrCategoryMismatch = errors.New("element type does not fit category")
	// ErrNotTrivial is returned by operations restricted to trivial types.
	ErrNotTrivial = errors.New("operation requires a trivial element type")
)

// ConstructionError reports the failure of constructing the element at Index
// within a batch. All elements before Index have been destroyed when the error is
// returned, and the element at Index holds the zero value.
type ConstructionError struct {
	Index int
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction of element %d failed: %v", e.Index, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Is makes a ConstructionError match ErrConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}
