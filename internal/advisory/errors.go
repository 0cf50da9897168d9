package advisory

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means no AI credential is configured.
var ErrNotConfigured = errors.New("AI service is not configured")

// ErrorKind classifies why an advisory call did not produce a model answer.
type ErrorKind string

const (
	KindNotConfigured ErrorKind = "not_configured"
	KindTransport     ErrorKind = "transport"
	KindParse         ErrorKind = "parse"
)

// Error is returned alongside fallback content (or alone, for research)
// when the AI service could not be used.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("advisory %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of an advisory error, or "" for other errors.
func KindOf(err error) ErrorKind {
	var advErr *Error
	if errors.As(err, &advErr) {
		return advErr.Kind
	}
	return ""
}
