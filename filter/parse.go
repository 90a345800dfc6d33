package filter

import (
	"strconv"
	"strings"

	pc "github.com/shibukawa/parsercombinator"

	tok "github.com/oyamado/fieldfilter/tokenizer"
)

// Parse parses input and returns one Field per dotted segment.
//
// A valid filter is one or more chained segments:
//
//	.a_name{"a_label"}.another_name
//
// Parse is a pure function: no shared state survives the call, so it is
// safe to call from any number of goroutines. On failure it returns a
// *ParseError carrying the exact input position.
func Parse(input string) (Filter, error) {
	tokens, err := tok.Tokenize(input)
	if err != nil {
		return nil, adaptTokenizeError(err)
	}

	pctx := pc.NewParseContext[tok.Token]()

	_, match, err := filterRule(pctx, toParserTokens(tokens))
	if err != nil {
		return nil, diagnose(tokens)
	}

	return reduce(match)
}

// reduce walks the rule-stamped token stream and builds the field list.
// Tokens arrive in document order: a segment marker, then that segment's
// name or quoted_name, then its qualifiers.
func reduce(match []pc.Token[tok.Token]) (Filter, error) {
	fields := make(Filter, 0, 4)

	var (
		field   Field
		segPos  tok.Position
		started bool
	)

	emit := func() error {
		if !started {
			return nil
		}
		if field.Name == "" {
			// the grammar guarantees every segment a non-empty name;
			// an empty one means grammar and reducer disagree
			return &ParseError{Kind: KindUnsupportedConstruct, Pos: segPos, Found: "."}
		}

		fields = append(fields, field)

		return nil
	}

	for _, token := range match {
		switch Rule(token.Type) {
		case RuleSegment:
			if err := emit(); err != nil {
				return nil, err
			}

			field = Field{}
			segPos = token.Val.Position
			started = true
		case RuleName:
			field.Name = token.Val.Value
		case RuleQuotedName:
			quoted := unquote(token.Val.Value)
			if quoted == "" {
				// `.""` satisfies the grammar but a segment name must not
				// be empty; reject it here with the quote's position
				return nil, syntaxError(token.Val, RuleQuotedName)
			}

			field.Name = quoted
		case RuleLabel:
			field.Labels = append(field.Labels, unquote(token.Val.Value))
		case RuleNumericIndex:
			index, err := strconv.Atoi(token.Val.Value)
			if err != nil {
				// the tokenizer only lets digits through, so the sole
				// failure mode is a value wider than int
				return nil, &ParseError{
					Kind:  KindIndexOverflow,
					Pos:   token.Val.Position,
					Found: token.Val.Value,
				}
			}

			field.Index = &index
		default:
			return nil, &ParseError{
				Kind:  KindUnsupportedConstruct,
				Pos:   token.Val.Position,
				Found: token.Val.Value,
			}
		}
	}

	if err := emit(); err != nil {
		return nil, err
	}

	return fields, nil
}

// unquote strips the surrounding quotes from a QUOTED token value. The
// language has no escape sequences, so a plain trim is exact.
func unquote(value string) string {
	return strings.TrimSuffix(strings.TrimPrefix(value, `"`), `"`)
}
