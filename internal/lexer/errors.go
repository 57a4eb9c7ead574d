package lexer

import (
	"errors"
	"fmt"
)

// ErrLex is the sentinel wrapped by every tokenization failure.
var ErrLex = errors.New("lexical error")

// Error describes why and where tokenization stopped.
type Error struct {
	Pos Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Col+1, e.Msg)
}

// Unwrap lets errors.Is match ErrLex.
func (e *Error) Unwrap() error {
	return ErrLex
}

// Line returns the 1-based line the error points at.
func (e *Error) Line() int { return e.Pos.Line }

// Column returns the 0-based byte column the error points at.
func (e *Error) Column() int { return e.Pos.Col }

func errorf(pos Pos, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
