package filter

import (
	"slices"

	pc "github.com/shibukawa/parsercombinator"

	tok "github.com/oyamado/fieldfilter/tokenizer"
)

// Rule identifies a grammar rule of the filter language.
type Rule string

// Grammar rules. The reducer and the error adapter are keyed by these
// identifiers, so adding a rule here forces both to handle it.
const (
	RuleFilter       Rule = "filter"
	RuleSegment      Rule = "segment"
	RuleName         Rule = "name"
	RuleQuotedName   Rule = "quoted_name"
	RuleLabel        Rule = "label"
	RuleNumericIndex Rule = "numeric_index"

	// silent punctuation rules, reported in expectations only
	RuleLabelClose Rule = "label_close"
	RuleIndexClose Rule = "index_close"
)

// The grammar, in EBNF:
//
//	filter        ::= segment+
//	segment       ::= "." (name | quoted_name) qualifier*
//	qualifier     ::= "{" quoted_name "}" | "[" numeric_index "]"
//
// No whitespace is permitted between tokens. Each matched rule stamps its
// first token with the rule identifier; the reducer walks the stamped
// stream, so the four child kinds of a segment (name, quoted_name, label,
// numeric_index) arrive in document order behind their segment marker.
var (
	dot        = primitive(tok.DOT)
	labelOpen  = primitive(tok.LBRACE)
	labelClose = primitive(tok.RBRACE)
	indexOpen  = primitive(tok.LBRACKET)
	indexClose = primitive(tok.RBRACKET)

	name       = tag(RuleName, primitive(tok.NAME))
	quotedName = tag(RuleQuotedName, primitive(tok.QUOTED))

	label        = tag(RuleLabel, pc.Drop(labelOpen), primitive(tok.QUOTED), pc.Drop(labelClose))
	numericIndex = tag(RuleNumericIndex, pc.Drop(indexOpen), primitive(tok.NUMBER), pc.Drop(indexClose))
	qualifier    = pc.Or(label, numericIndex)

	segment    = pc.Seq(tag(RuleSegment, dot), pc.Or(name, quotedName), pc.ZeroOrMore("qualifier", qualifier))
	filterRule = pc.Seq(segment, pc.ZeroOrMore("segment", segment), pc.EOS[tok.Token]())
)

// primitive matches a single token of one of the given types
func primitive(types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

// tag stamps the first token matched by the sequence with the rule name
func tag(rule Rule, parsers ...pc.Parser[tok.Token]) pc.Parser[tok.Token] {
	return pc.Trans(pc.Seq(parsers...), func(pctx *pc.ParseContext[tok.Token], src []pc.Token[tok.Token]) ([]pc.Token[tok.Token], error) {
		if len(src) > 0 {
			src[0].Type = string(rule)
		}

		return src, nil
	})
}

// toParserTokens converts tokenizer output for the grammar engine. The
// trailing EOF token is omitted; the engine anchors on end of stream itself.
func toParserTokens(tokens []tok.Token) []pc.Token[tok.Token] {
	results := make([]pc.Token[tok.Token], 0, len(tokens))

	for _, token := range tokens {
		if token.Type == tok.EOF {
			break
		}

		results = append(results, pc.Token[tok.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		})
	}

	return results
}
