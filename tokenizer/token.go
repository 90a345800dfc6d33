package tokenizer

import (
	"errors"
	"fmt"
)

// ErrUnterminatedString is returned when a quoted name has no closing quote
var ErrUnterminatedString = errors.New("unterminated string literal")

// Error is a tokenize error with the position of the offending input.
type Error struct {
	Err      error
	Position Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Err, e.Position.Line, e.Position.Column)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TokenType represents the type of a token
type TokenType int

const (
	EOF TokenType = iota
	WHITESPACE
	NAME       // bare identifiers: (ALPHA | "_") (ALPHA | DIGIT | "_")*
	QUOTED     // quoted names: "text" (value keeps the quotes)
	NUMBER     // DIGIT+
	DOT        // .
	LBRACE     // {
	RBRACE     // }
	LBRACKET   // [
	RBRACKET   // ]
	ILLEGAL    // anything the filter language has no token for
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NAME:
		return "NAME"
	case QUOTED:
		return "QUOTED"
	case NUMBER:
		return "NUMBER"
	case DOT:
		return "DOT"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case ILLEGAL:
		return "ILLEGAL"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token of the filter language
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
