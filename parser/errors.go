package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// ParseError represents a structural failure during scanning or
// expansion: an unterminated quoted string, input ending inside an
// argument list, or a builtin rejecting its argument count. Structural
// failures are fatal; output written before the failure is not rolled
// back.
type ParseError struct {
	Pos        lexer.Position
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d", e.Pos.Line)
	}

	return fmt.Sprintf("%s: %s", location, e.Message)
}

func (e *ParseError) GetPosition() lexer.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// errorf creates a parse error at the given position.
func errorf(pos lexer.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}
