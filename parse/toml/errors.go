package toml

import (
	"errors"
	"fmt"
)

// ErrSyntax matches every error produced while decoding a document.
var ErrSyntax = errors.New("toml: syntax error")

// SyntaxError is the single error kind of the decoder. Line and Column are
// 1-based; both are zero when the violation has no source position, as for
// merge conflicts found while normalizing.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return "toml: " + e.Msg
	}
	return fmt.Sprintf("toml:%d:%d: %s", e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func syntaxErrorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

// at stamps a position onto err unless it already carries one.
func at(err error, line, col int) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		if se.Line == 0 {
			se.Line, se.Column = line, col
		}
		return se
	}
	return &SyntaxError{Line: line, Column: col, Msg: err.Error()}
}
