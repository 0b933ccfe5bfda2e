package schema

import (
	"fmt"

	"github.com/schema-tools/go-schema-tools/ir"
)

// Document is one schema definition unit: an identifier, a root node and
// the definitions table reachable under its "$defs" member.
//
// The root node is owned by the document and treated as immutable once the
// document enters a DocumentSet; lint and combine only ever read it or
// clone from it.
type Document struct {
	// ID is the document identifier used by cross-document references,
	// e.g. "/schemas/point".
	ID string

	// Root is the document's root schema node, including its $defs
	// member.
	Root *ir.Node
}

// NewDocument builds a Document from a parsed tree. The id must have the
// document path form ("/seg/seg"); the root must be an object; definition
// names must be unique.
func NewDocument(id string, root *ir.Node) (*Document, error) {
	ref, err := ParseReference(id)
	if err != nil {
		return nil, fmt.Errorf("document id %q: %w", id, err)
	}
	if ref.IsLocal() || ref.Fragment != "" {
		return nil, fmt.Errorf("document id %q is not a document path", id)
	}
	if root == nil || root.Type != ir.ObjectType {
		return nil, fmt.Errorf("document %q: root must be an object", id)
	}
	if defs := ir.Get(root, DefsKey); defs != nil {
		if defs.Type != ir.ObjectType {
			return nil, fmt.Errorf("document %q: %s must be an object", id, DefsKey)
		}
		seen := map[string]bool{}
		for _, f := range defs.Fields {
			if seen[f.String] {
				return nil, fmt.Errorf("document %q: duplicate definition %q", id, f.String)
			}
			seen[f.String] = true
		}
	}
	return &Document{ID: id, Root: root}, nil
}

// Defs returns the document's definitions table node, or nil.
func (d *Document) Defs() *ir.Node {
	return ir.Get(d.Root, DefsKey)
}

// DefNames returns definition names in declaration order.
func (d *Document) DefNames() []string {
	defs := d.Defs()
	if defs == nil {
		return nil
	}
	names := make([]string, 0, len(defs.Fields))
	for _, f := range defs.Fields {
		names = append(names, f.String)
	}
	return names
}

// Def returns the definition subschema for name, or nil.
func (d *Document) Def(name string) *ir.Node {
	defs := d.Defs()
	if defs == nil {
		return nil
	}
	return ir.Get(defs, name)
}
