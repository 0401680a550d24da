package tables

import (
	"errors"
	"fmt"
)

// TableErrorKind classifies a failure from the table-finding pipeline.
type TableErrorKind int

const (
	// ErrInvalidSettings indicates a validated settings constraint was violated.
	ErrInvalidSettings TableErrorKind = iota
	// ErrInvalidPageState indicates the page was not in the primitives-extracted state.
	ErrInvalidPageState
	// ErrMissingPage indicates extractText was requested without a page.
	ErrMissingPage
	// ErrCancelled indicates an external cancellation token fired between stages.
	ErrCancelled
)

func (k TableErrorKind) String() string {
	switch k {
	case ErrInvalidSettings:
		return "invalid settings"
	case ErrInvalidPageState:
		return "invalid page state"
	case ErrMissingPage:
		return "missing page"
	case ErrCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TableError wraps a failure with its kind so callers can test for a
// specific condition with errors.Is while still seeing the underlying
// cause via Unwrap.
type TableError struct {
	Kind TableErrorKind
	Msg  string
	Err  error
}

func (e *TableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tables: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("tables: %s: %s", e.Kind, e.Msg)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *TableError with the same Kind, so that
// errors.Is(err, &TableError{Kind: ErrMissingPage}) works without callers
// needing to construct a full sentinel value.
func (e *TableError) Is(target error) bool {
	var t *TableError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newSettingsError(msg string, err error) error {
	return &TableError{Kind: ErrInvalidSettings, Msg: msg, Err: err}
}

func newPageStateError(msg string) error {
	return &TableError{Kind: ErrInvalidPageState, Msg: msg}
}

func newMissingPageError(msg string) error {
	return &TableError{Kind: ErrMissingPage, Msg: msg}
}

func newCancelledError(stage string) error {
	return &TableError{Kind: ErrCancelled, Msg: "aborted during " + stage}
}

// IsKind reports whether err (or anything it wraps) is a *TableError of
// the given kind.
func IsKind(err error, kind TableErrorKind) bool {
	var t *TableError
	if !errors.As(err, &t) {
		return false
	}
	return t.Kind == kind
}
