package scripting

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure.
type Kind string

const (
	KindLoad          Kind = "load"
	KindUnknownScript Kind = "unknown-script"
	KindCompile       Kind = "compile"
	KindRuntime       Kind = "runtime"
	KindTimeout       Kind = "timeout"
	KindCanceled      Kind = "canceled"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrUnknownScript = errors.New("unknown script")
	ErrCompile       = errors.New("script compile error")
	ErrRuntime       = errors.New("script runtime error")
	ErrTimeout       = errors.New("script timed out")
	ErrCanceled      = errors.New("script run canceled")
)

var kindSentinels = map[Kind]error{
	KindUnknownScript: ErrUnknownScript,
	KindCompile:       ErrCompile,
	KindRuntime:       ErrRuntime,
	KindTimeout:       ErrTimeout,
	KindCanceled:      ErrCanceled,
}

// Error is a failure reported out of the transform pipeline. It always
// carries the script identifier (when one was resolved) so the shell can
// display which script failed.
type Error struct {
	Kind    Kind
	Script  string
	Message string
	Err     error
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, script, message string, err error) *Error {
	return &Error{Kind: kind, Script: script, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Script != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Script, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}
