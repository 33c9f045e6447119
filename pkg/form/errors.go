package form

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a path does not name a declared field.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrNotArray is returned when push/delete target a non-array field.
	ErrNotArray = errors.New("form: field is not an array")
	// ErrPinnedRecord is returned when deleting a record that cannot be removed.
	ErrPinnedRecord = errors.New("form: record is pinned")
	// ErrIndexOutOfRange is returned when deleting a record that does not exist.
	ErrIndexOutOfRange = errors.New("form: record index out of range")
	// ErrUnknownButton is returned when pressing a button the page lacks.
	ErrUnknownButton = errors.New("form: unknown button")
	// ErrPageOutOfRange is returned when restoring an invalid page index.
	ErrPageOutOfRange = errors.New("form: page out of range")
	// ErrGateRejected is returned when a submit reaches past a continue gate
	// that rejects the current values.
	ErrGateRejected = errors.New("form: gate rejected")
)

// GateError reports the page whose continue gate rejected a submission.
type GateError struct {
	Page    int
	Message string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("form: gate on page %d rejected values: %s", e.Page, e.Message)
}

func (e *GateError) Unwrap() error { return ErrGateRejected }
