package parser

import (
	"errors"
	"fmt"
)

// Error kinds reported through SyntaxError. Use errors.Is to test for them.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrNumber         = errors.New("invalid number")
	ErrMalformedLine  = errors.New("malformed palette line")
	ErrDuplicateParam = errors.New("duplicate parameter")
)

// SyntaxError describes where and why parsing failed.
type SyntaxError struct {
	Err  error
	Line int // 1-based, 0 when not parsing a palette file
	Col  int // 1-based byte column
	Msg  string
}

func (e *SyntaxError) Error() string {
	msg := e.Err.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, msg)
	}
	return fmt.Sprintf("column %d: %s", e.Col, msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// withKind adds a second kind that errors.Is will match.
func (e *SyntaxError) withKind(kind error) *SyntaxError {
	e.Err = fmt.Errorf("%w: %w", e.Err, kind)
	return e
}

// Offset returns the 0-based byte offset of the error within its line.
func (e *SyntaxError) Offset() int {
	return e.Col - 1
}
