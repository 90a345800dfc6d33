package filter

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNameFilter(t *testing.T) {
	fields, err := Parse(".a_name")
	assert.NoError(t, err)
	assert.Equal(t, Filter{NewField("a_name")}, fields)
}

func TestLabelFilter(t *testing.T) {
	fields, err := Parse(`.a_name{"a_label"}`)
	assert.NoError(t, err)
	assert.Equal(t, Filter{LabeledField("a_name", "a_label")}, fields)
}

func TestIndexFilter(t *testing.T) {
	fields, err := Parse(".a_name[0]")
	assert.NoError(t, err)
	assert.Equal(t, Filter{IndexedField("a_name", 0)}, fields)
}

func TestTraversalFilter(t *testing.T) {
	fields, err := Parse(`.a_name{"a_label"}.another_name{"another_label"}.third_name`)
	assert.NoError(t, err)
	assert.Equal(t, Filter{
		LabeledField("a_name", "a_label"),
		LabeledField("another_name", "another_label"),
		NewField("third_name"),
	}, fields)
}

func TestValidFilters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Filter
	}{
		{
			name:     "quoted segment name",
			input:    `."a name"`,
			expected: Filter{NewField("a name")},
		},
		{
			name:     "repeated labels keep written order",
			input:    `.a{"x"}{"y"}`,
			expected: Filter{LabeledField("a", "x", "y")},
		},
		{
			name:     "duplicate labels are allowed",
			input:    `.a{"x"}{"x"}`,
			expected: Filter{LabeledField("a", "x", "x")},
		},
		{
			name:     "empty label is allowed",
			input:    `.a{""}`,
			expected: Filter{LabeledField("a", "")},
		},
		{
			name:     "label and index may coexist",
			input:    `.a{"x"}[0]`,
			expected: Filter{{Name: "a", Labels: []string{"x"}, Index: intPtr(0)}},
		},
		{
			name:     "index after quoted name",
			input:    `."a name"[3]`,
			expected: Filter{IndexedField("a name", 3)},
		},
		{
			name:     "underscore name",
			input:    "._",
			expected: Filter{NewField("_")},
		},
		{
			name:     "name with digits after the first character",
			input:    ".a00",
			expected: Filter{NewField("a00")},
		},
		{
			name:     "quoted name may contain syntax characters",
			input:    `."a.b[0]{c}"`,
			expected: Filter{NewField("a.b[0]{c}")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Parse(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, fields)
		})
	}
}

func TestInvalidFilters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrSyntax,
		},
		{
			name:    "missing leading dot",
			input:   "a_name",
			wantErr: ErrSyntax,
		},
		{
			name:    "name must not start with a digit",
			input:   ".00asdf",
			wantErr: ErrSyntax,
		},
		{
			name:    "trailing dot",
			input:   ".a.",
			wantErr: ErrSyntax,
		},
		{
			name:    "bare dot",
			input:   ".",
			wantErr: ErrSyntax,
		},
		{
			name:    "whitespace between segments",
			input:   ".a .b",
			wantErr: ErrSyntax,
		},
		{
			name:    "whitespace inside qualifier",
			input:   `.a{ "x"}`,
			wantErr: ErrSyntax,
		},
		{
			name:    "unterminated quote",
			input:   `."oops`,
			wantErr: ErrSyntax,
		},
		{
			name:    "unquoted label",
			input:   ".a{x}",
			wantErr: ErrSyntax,
		},
		{
			name:    "unclosed label",
			input:   `.a{"x"`,
			wantErr: ErrSyntax,
		},
		{
			name:    "non-numeric index",
			input:   ".a[b]",
			wantErr: ErrSyntax,
		},
		{
			name:    "negative index",
			input:   ".a[-1]",
			wantErr: ErrSyntax,
		},
		{
			name:    "unclosed index",
			input:   ".a[0",
			wantErr: ErrSyntax,
		},
		{
			name:    "empty index",
			input:   ".a[]",
			wantErr: ErrSyntax,
		},
		{
			name:    "trailing garbage after a segment",
			input:   ".a}",
			wantErr: ErrSyntax,
		},
		{
			name:    "empty quoted name",
			input:   `.""`,
			wantErr: ErrSyntax,
		},
		{
			name:    "index wider than int",
			input:   ".a[18446744073709551616]",
			wantErr: ErrIndexOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Parse(tt.input)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, 0, len(fields))

			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestErrorPositions(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantLine   int
		wantColumn int
		expected   []Rule
		found      string
	}{
		{
			name:       "empty input fails at the start",
			input:      "",
			wantLine:   1,
			wantColumn: 1,
			expected:   []Rule{RuleSegment},
			found:      "",
		},
		{
			name:       "digit-leading name fails at the numeral",
			input:      ".00asdf",
			wantLine:   1,
			wantColumn: 2,
			expected:   []Rule{RuleName, RuleQuotedName},
			found:      "00",
		},
		{
			name:       "trailing dot fails at end of input",
			input:      ".a.",
			wantLine:   1,
			wantColumn: 4,
			expected:   []Rule{RuleName, RuleQuotedName},
			found:      "",
		},
		{
			name:       "missing leading dot fails at the name",
			input:      "a_name",
			wantLine:   1,
			wantColumn: 1,
			expected:   []Rule{RuleSegment},
			found:      "a_name",
		},
		{
			name:       "unclosed label fails at end of input",
			input:      `.a{"x"`,
			wantLine:   1,
			wantColumn: 7,
			expected:   []Rule{RuleLabelClose},
			found:      "",
		},
		{
			name:       "non-numeric index fails at the offending token",
			input:      ".abc[x]",
			wantLine:   1,
			wantColumn: 6,
			expected:   []Rule{RuleNumericIndex},
			found:      "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)

			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
			assert.Equal(t, KindSyntax, perr.Kind)
			assert.Equal(t, tt.wantLine, perr.Pos.Line)
			assert.Equal(t, tt.wantColumn, perr.Pos.Column)
			assert.Equal(t, tt.expected, perr.Expected)
			assert.Equal(t, tt.found, perr.Found)
		})
	}
}

func TestIndexOverflowPosition(t *testing.T) {
	_, err := Parse(".a[99999999999999999999]")

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, KindIndexOverflow, perr.Kind)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 4, perr.Pos.Column)
	assert.Equal(t, "99999999999999999999", perr.Found)
}

func TestParseIsDeterministic(t *testing.T) {
	input := `.a_name{"a_label"}[2].b`

	first, err := Parse(input)
	assert.NoError(t, err)

	second, err := Parse(input)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func intPtr(i int) *int {
	return &i
}

func TestParseDoesNotShareState(t *testing.T) {
	fields, err := Parse(`.a{"x"}`)
	assert.NoError(t, err)

	fields[0].Labels[0] = "mutated"

	again, err := Parse(`.a{"x"}`)
	assert.NoError(t, err)
	assert.Equal(t, Filter{LabeledField("a", "x")}, again)
}
