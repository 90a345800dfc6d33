// Package navigate resolves parsed filters against YAML document trees.
//
// The filter language itself knows nothing about documents; this package is
// one consumer of filter.Filter. A field's name selects a mapping key, each
// label selects a nested mapping key in written order (the block-label
// convention), and an index selects a sequence element.
package navigate

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/oyamado/fieldfilter/filter"
)

// Sentinel errors
var (
	ErrEmptyDocument   = errors.New("empty document")
	ErrNotFound        = errors.New("field not found")
	ErrKindMismatch    = errors.New("unexpected node kind")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Find returns the node selected by the filter. The language has no
// wildcards, so a filter addresses at most one node.
func Find(root *yaml.Node, f filter.Filter) (*yaml.Node, error) {
	node, err := resolve(root)
	if err != nil {
		return nil, err
	}

	for _, field := range f {
		node, err = findField(node, field)
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

// findField applies one segment: name, then labels in order, then index
func findField(node *yaml.Node, field filter.Field) (*yaml.Node, error) {
	node, err := lookup(node, field.Name)
	if err != nil {
		return nil, err
	}

	for _, label := range field.Labels {
		node, err = lookup(node, label)
		if err != nil {
			return nil, err
		}
	}

	if field.Index != nil {
		node, err = element(node, *field.Index)
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

// lookup finds a key in a mapping node and returns its value node
func lookup(node *yaml.Node, key string) (*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q needs a mapping, got %s", ErrKindMismatch, key, kindName(node.Kind))
	}

	// a mapping's Content alternates key and value nodes
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return resolve(node.Content[i+1])
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// element returns the index-th entry of a sequence node
func element(node *yaml.Node, index int) (*yaml.Node, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: index %d needs a sequence, got %s", ErrKindMismatch, index, kindName(node.Kind))
	}

	if index < 0 || index >= len(node.Content) {
		return nil, fmt.Errorf("%w: %d (sequence has %d entries)", ErrIndexOutOfRange, index, len(node.Content))
	}

	return resolve(node.Content[index])
}

// resolve unwraps document and alias nodes
func resolve(node *yaml.Node) (*yaml.Node, error) {
	for {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil, ErrEmptyDocument
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node, nil
		}
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
