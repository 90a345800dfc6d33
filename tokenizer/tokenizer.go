package tokenizer

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// TokenIterator uses the Go 1.23 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// FilterTokenizer splits a filter expression into tokens.
//
// The filter language is deliberately small: dots, braces, brackets, bare
// names, quoted names and unsigned numerals. Everything else is emitted as
// an ILLEGAL token and left for the grammar to reject with a position.
type FilterTokenizer struct {
	input string
}

// New creates a new FilterTokenizer
func New(input string) *FilterTokenizer {
	return &FilterTokenizer{input: input}
}

// Tokens returns an iterator of tokens
func (t *FilterTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:      t.input,
			nextLine:   1,
			nextColumn: 1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *FilterTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 16)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Tokenize is a convenience wrapper over New and AllTokens
func Tokenize(input string) ([]Token, error) {
	return New(input).AllTokens()
}

// Internal tokenizer implementation
type tokenizer struct {
	input      string
	position   int // offset just past the current rune
	start      int // offset of the current rune
	line       int // line of the current rune
	column     int // column of the current rune
	nextLine   int
	nextColumn int
	current    rune
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch {
	case t.current == 0:
		return t.newToken(EOF, ""), nil
	case t.current == ' ' || t.current == '\t' || t.current == '\r' || t.current == '\n':
		return t.readWhitespace(), nil
	case t.current == '.':
		return t.readSingle(DOT), nil
	case t.current == '{':
		return t.readSingle(LBRACE), nil
	case t.current == '}':
		return t.readSingle(RBRACE), nil
	case t.current == '[':
		return t.readSingle(LBRACKET), nil
	case t.current == ']':
		return t.readSingle(RBRACKET), nil
	case t.current == '"':
		return t.readQuoted()
	case isNameStart(t.current):
		return t.readName(), nil
	case isDigit(t.current):
		return t.readNumber(), nil
	default:
		return t.readSingle(ILLEGAL), nil
	}
}

// readChar reads the next character
func (t *tokenizer) readChar() {
	t.line = t.nextLine
	t.column = t.nextColumn

	if t.position >= len(t.input) {
		t.current = 0
		t.start = t.position
		t.position++
		return
	}

	r, width := utf8.DecodeRuneInString(t.input[t.position:])
	t.current = r
	t.start = t.position
	t.position += width

	if t.current == '\n' {
		t.nextLine++
		t.nextColumn = 1
	} else {
		t.nextColumn++
	}
}

func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Line:   t.line,
			Column: t.column,
			Offset: t.start,
		},
	}
}

// readSingle emits a one-character token and advances
func (t *tokenizer) readSingle(tokenType TokenType) Token {
	token := t.newToken(tokenType, string(t.current))
	t.readChar()
	return token
}

// readWhitespace reads a run of whitespace characters
func (t *tokenizer) readWhitespace() Token {
	var builder strings.Builder
	token := t.newToken(WHITESPACE, "")

	for t.current == ' ' || t.current == '\t' || t.current == '\r' || t.current == '\n' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	token.Value = builder.String()
	return token
}

// readName reads a bare name: (ALPHA | "_") (ALPHA | DIGIT | "_")*
func (t *tokenizer) readName() Token {
	var builder strings.Builder
	token := t.newToken(NAME, "")

	for isNameStart(t.current) || isDigit(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	token.Value = builder.String()
	return token
}

// readNumber reads an unsigned numeral: DIGIT+
func (t *tokenizer) readNumber() Token {
	var builder strings.Builder
	token := t.newToken(NUMBER, "")

	for isDigit(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	token.Value = builder.String()
	return token
}

// readQuoted reads a quoted name. The language has no escape sequences: a
// quoted name is any run of characters up to the next '"'. The emitted value
// keeps both quotes; the reducer strips them.
func (t *tokenizer) readQuoted() (Token, error) {
	var builder strings.Builder
	token := t.newToken(QUOTED, "")

	builder.WriteRune(t.current) // opening quote
	t.readChar()

	for t.current != 0 && t.current != '"' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if t.current == 0 {
		return Token{}, &Error{Err: ErrUnterminatedString, Position: token.Position}
	}

	builder.WriteRune(t.current) // closing quote
	t.readChar()

	token.Value = builder.String()
	return token, nil
}

// The grammar is ASCII-only: a name must not start with a digit, and ALPHA
// means the latin letters, not every unicode letter.
func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
