package directive

import (
	"errors"
	"fmt"
)

// ErrDirective is wrapped by every directive failure, syntax errors included.
var ErrDirective = errors.New("directive execution failed")

// Error reports a failing directive statement. Line is 1-based and relative
// to the executed text until the caller rebases it.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap lets errors.Is match ErrDirective.
func (e *Error) Unwrap() error {
	return ErrDirective
}

func errorf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}
