package export

import (
	"errors"
	"fmt"
)

// Kind classifies export failures.
type Kind string

const (
	KindSerialization Kind = "serialization"
	KindPayload       Kind = "payload"
	KindCancelled     Kind = "cancelled"
)

// UserMessage is the single line shown when an export fails.
const UserMessage = "export failed: serialization failure"

// Error is returned for every failed export. No artifact accompanies it.
type Error struct {
	Kind   Kind
	Format Format
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Format, e.Kind, e.Err)
	}
	return fmt.Sprintf("export %s: %s", e.Format, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an export *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func wrapError(kind Kind, format Format, err error) *Error {
	return &Error{Kind: kind, Format: format, Err: err}
}
