package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tok "github.com/oyamado/fieldfilter/tokenizer"
)

// Sentinel errors, one per ParseError kind, for errors.Is matching
var (
	ErrSyntax               = errors.New("syntax error")
	ErrIndexOverflow        = errors.New("index overflow")
	ErrUnsupportedConstruct = errors.New("unsupported construct")
)

// ErrorKind classifies a ParseError
type ErrorKind int

const (
	// KindSyntax means no grammar rule alternative matched at the position
	KindSyntax ErrorKind = iota
	// KindIndexOverflow means a numeric index exceeds the machine index range
	KindIndexOverflow
	// KindUnsupportedConstruct means the reducer met a parse-tree node it
	// does not recognize. This is an internal-consistency guard, not an
	// expected user-facing condition.
	KindUnsupportedConstruct
)

// ParseError is the single error surface of Parse. Failures from the
// grammar engine, the tokenizer and the reducer are all adapted into this
// shape, so callers handle one positioned error type regardless of origin.
type ParseError struct {
	Kind ErrorKind
	Pos  tok.Position
	// Expected holds the rule alternatives that were viable at the failure
	// point. Only syntax errors carry it.
	Expected []Rule
	// Found is the offending input text. Empty means end of input.
	Found string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindIndexOverflow:
		return fmt.Sprintf("index %s out of range at line %d, column %d", e.Found, e.Pos.Line, e.Pos.Column)
	case KindUnsupportedConstruct:
		return fmt.Sprintf("unsupported construct %s at line %d, column %d", e.found(), e.Pos.Line, e.Pos.Column)
	default:
		return fmt.Sprintf("syntax error at line %d, column %d: expected %s, found %s",
			e.Pos.Line, e.Pos.Column, e.expected(), e.found())
	}
}

// Unwrap maps the kind onto its sentinel so that errors.Is works
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case KindIndexOverflow:
		return ErrIndexOverflow
	case KindUnsupportedConstruct:
		return ErrUnsupportedConstruct
	default:
		return ErrSyntax
	}
}

func (e *ParseError) expected() string {
	if len(e.Expected) == 0 {
		return "nothing"
	}

	names := make([]string, 0, len(e.Expected))
	for _, rule := range e.Expected {
		names = append(names, string(rule))
	}

	return strings.Join(names, " or ")
}

func (e *ParseError) found() string {
	if e.Found == "" {
		return "end of input"
	}

	return strconv.Quote(e.Found)
}

// syntaxError builds a positioned syntax error from the offending token
func syntaxError(t tok.Token, expected ...Rule) *ParseError {
	return &ParseError{
		Kind:     KindSyntax,
		Pos:      t.Position,
		Expected: expected,
		Found:    t.Value,
	}
}

// adaptTokenizeError converts a tokenizer failure into the domain error,
// keeping the tokenizer's position. An unterminated quote is the only way
// the tokenizer fails on this language.
func adaptTokenizeError(err error) error {
	var terr *tok.Error
	if errors.As(err, &terr) {
		return &ParseError{
			Kind:     KindSyntax,
			Pos:      terr.Position,
			Expected: []Rule{RuleQuotedName},
		}
	}

	return err
}

// diagnose re-walks the raw token stream after the grammar engine rejected
// it, pinpointing the first offending token and the rule alternatives that
// were viable there. The walk mirrors the grammar exactly; keeping it next
// to the rule set is what keeps the two in sync.
func diagnose(tokens []tok.Token) *ParseError {
	i := 0

	for {
		// a segment must start with "."; this also rejects empty input,
		// whitespace between tokens and trailing garbage after a segment
		if tokens[i].Type != tok.DOT {
			return syntaxError(tokens[i], RuleSegment)
		}
		i++

		switch tokens[i].Type {
		case tok.NAME, tok.QUOTED:
			i++
		default:
			return syntaxError(tokens[i], RuleName, RuleQuotedName)
		}

		for {
			if tokens[i].Type == tok.LBRACE {
				i++
				if tokens[i].Type != tok.QUOTED {
					return syntaxError(tokens[i], RuleQuotedName)
				}
				i++
				if tokens[i].Type != tok.RBRACE {
					return syntaxError(tokens[i], RuleLabelClose)
				}
				i++
			} else if tokens[i].Type == tok.LBRACKET {
				i++
				if tokens[i].Type != tok.NUMBER {
					return syntaxError(tokens[i], RuleNumericIndex)
				}
				i++
				if tokens[i].Type != tok.RBRACKET {
					return syntaxError(tokens[i], RuleIndexClose)
				}
				i++
			} else {
				break
			}
		}

		if tokens[i].Type == tok.EOF {
			// the walk found nothing wrong even though the engine rejected
			// the input; unreachable while walk and grammar agree
			return syntaxError(tokens[i], RuleSegment)
		}
	}
}
