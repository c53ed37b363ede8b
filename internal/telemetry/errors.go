package telemetry

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSamples indicates the input held no data rows.
	ErrNoSamples = errors.New("telemetry: no samples in input")

	// ErrFieldCount indicates a row without exactly five fields.
	ErrFieldCount = errors.New("telemetry: wrong number of fields")

	// ErrBadNumber indicates a field that is not a decimal number.
	ErrBadNumber = errors.New("telemetry: field is not a number")
)

// MalformedInputError names the row that failed strict parsing.
type MalformedInputError struct {
	Line    int // 1-based
	Text    string
	Field   int // 0-based, -1 when the whole row is at fault
	Wrapped error
}

func (e *MalformedInputError) Error() string {
	if e.Field >= 0 {
		return fmt.Sprintf("line %d field %d (%q): %v", e.Line, e.Field, e.Text, e.Wrapped)
	}
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Wrapped)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Wrapped
}
