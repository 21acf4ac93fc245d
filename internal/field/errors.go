package field

import (
	"errors"
	"fmt"
)

// Errors returned by field editing and I/O.
var (
	// ErrWellNotFound indicates an operation named a well that is not in the field.
	ErrWellNotFound = errors.New("field: well not found")

	// ErrComponentNotFound indicates an operation named an unknown component.
	ErrComponentNotFound = errors.New("field: component not found")

	// ErrDuplicateWell indicates a well ID that is already taken.
	ErrDuplicateWell = errors.New("field: duplicate well id")

	// ErrInvalidKind indicates an unknown component, well or structure kind.
	ErrInvalidKind = errors.New("field: invalid kind")

	// ErrStationIndex indicates a survey station index out of range.
	ErrStationIndex = errors.New("field: station index out of range")

	// ErrFormat indicates an unsupported file extension.
	ErrFormat = errors.New("field: unsupported file format")

	// ErrMalformedRow indicates a survey line without three numeric columns.
	ErrMalformedRow = errors.New("field: malformed survey row")

	// ErrUnknownSample indicates a sample field name that is not registered.
	ErrUnknownSample = errors.New("field: unknown sample")
)

// LineError wraps a parse failure with the offending line.
type LineError struct {
	Line    int
	Text    string
	Wrapped error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Wrapped)
}

func (e *LineError) Unwrap() error {
	return e.Wrapped
}
