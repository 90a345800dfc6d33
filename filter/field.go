// Package filter parses the field-filter language used to select nested
// fields inside structured configuration data.
//
// A filter is a dotted chain of segments. Each segment names an attribute,
// block or object either with a bare identifier or a quoted string, and may
// carry qualifiers: braced quoted labels and a bracketed numeric index.
//
//	.a_name{"a_label"}.another_name[0]
package filter

// Field is one segment of a filter (Parse returns one Field per segment).
//
// e.g. for the filter `.foo{"bar"}.baz` there are two segments:
//
//   - the name "foo" and the label "bar"
//   - the name "baz"
type Field struct {
	// Name is an attribute, block, or object name
	Name string
	// Labels are block labels or object keys
	Labels []string
	// Index is a list index
	Index *int
}

// Filter is an ordered list of fields, one per dotted segment, in
// left-to-right source order.
type Filter []Field

// NewField creates a Field with a name only
func NewField(name string) Field {
	return Field{Name: name}
}

// LabeledField creates a Field with a name and block labels
func LabeledField(name string, labels ...string) Field {
	return Field{Name: name, Labels: labels}
}

// IndexedField creates a Field with a name and a list index
func IndexedField(name string, index int) Field {
	return Field{Name: name, Index: &index}
}
