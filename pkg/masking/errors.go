package masking

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexportedField is reported for a marked field that reflection cannot write.
	ErrUnexportedField = errors.New("marked field is not exported")

	// ErrUnsupportedType is reported for a marked field whose declared type
	// is not a string, *string, or a nestable container.
	ErrUnsupportedType = errors.New("unsupported type for marked field")

	// ErrMaxDepth is reported when nested recursion exceeds the scanner limit.
	ErrMaxDepth = errors.New("nested masking depth exceeded")

	// ErrNotPointer is returned when in-place masking gets a non-pointer value.
	ErrNotPointer = errors.New("in-place masking requires a non-nil pointer")
)

// Field operations reported in FieldError.Op.
const (
	OpAccess = "access"
	OpRead   = "read"
	OpWrite  = "write"
)

// FieldError describes a failure isolated to one field. It never escapes a
// masking pass; it is logged and collected in the Report.
type FieldError struct {
	Path string
	Kind Kind
	Op   string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("masking field %q (%s): %s: %v", e.Path, e.Kind, e.Op, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PassError wraps a failure that is not attributable to a single field.
type PassError struct {
	Type string
	Err  error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("masking pass over %s failed: %v", e.Type, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// panicError converts a recovered panic value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
