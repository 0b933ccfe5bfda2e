package schema

import (
	"sort"

	"github.com/schema-tools/go-schema-tools/ir"
)

// keyRank gives the canonical position of each schema keyword. Unknown
// keys sort between the known groups, keeping their relative order.
var keyRank = map[string]int{
	IDKey:                   0,
	RefKey:                  1,
	TitleKey:                2,
	DescriptionKey:          3,
	CommentKey:              4,
	TypeKey:                 5,
	EnumKey:                 6,
	ConstKey:                7,
	AllOfKey:                8,
	AnyOfKey:                9,
	OneOfKey:                10,
	PatternKey:              11,
	MinimumKey:              12,
	MaximumKey:              13,
	AdditionalPropertiesKey: 14,
	PropertiesKey:           15,
	RequiredKey:             16,
	ItemsKey:                17,
	ExamplesKey:             98,
	DefsKey:                 99,
}

const unknownKeyRank = 50

func rankOf(key string) int {
	if r, ok := keyRank[key]; ok {
		return r
	}
	return unknownKeyRank
}

// keyOrder reports keys deviating from the canonical order. It runs
// first at every schema position, so an object's order findings precede
// its content findings within the one pre-order walk.
func (l *linter) keyOrder(node *ir.Node) {
	prev := -1
	prevName := ""
	for _, f := range node.Fields {
		r := rankOf(f.String)
		if r < prev {
			l.warnf(node, "key %q out of canonical order, after %q", f.String, prevName)
		}
		if r >= prev {
			prev, prevName = r, f.String
		}
	}
}

// walkSchemas visits every schema position of a document body in
// pre-order: the node itself, composition branches, property schemas,
// items, and, at the root, the entries of the definition table. It does
// not descend into examples, enum or const values. Canonicalize uses it;
// the linter reaches the same positions through its own walk.
func walkSchemas(node *ir.Node, isRoot bool, fn func(*ir.Node)) {
	if node == nil || node.Type != ir.ObjectType {
		return
	}
	fn(node)
	for _, key := range []string{AllOfKey, AnyOfKey, OneOfKey} {
		if v := ir.Get(node, key); v != nil && v.Type == ir.ArrayType {
			for _, branch := range v.Values {
				walkSchemas(branch, false, fn)
			}
		}
	}
	if props := ir.Get(node, PropertiesKey); props != nil && props.Type == ir.ObjectType {
		for _, v := range props.Values {
			walkSchemas(v, false, fn)
		}
	}
	if items := ir.Get(node, ItemsKey); items != nil {
		walkSchemas(items, false, fn)
	}
	if isRoot {
		if defs := ir.Get(node, DefsKey); defs != nil && defs.Type == ir.ObjectType {
			for _, v := range defs.Values {
				walkSchemas(v, false, fn)
			}
		}
	}
}

// Canonicalize returns a copy of doc whose schema objects have their
// keys stable-sorted into canonical order. The input is not modified.
func Canonicalize(doc *Document) *Document {
	root := doc.Root.Clone()
	walkSchemas(root, true, sortKeys)
	return &Document{ID: doc.ID, Root: root}
}

func sortKeys(node *ir.Node) {
	n := len(node.Fields)
	if n < 2 {
		return
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return rankOf(node.Fields[idx[a]].String) < rankOf(node.Fields[idx[b]].String)
	})
	fields := make([]*ir.Node, n)
	values := make([]*ir.Node, n)
	for i, j := range idx {
		fields[i] = node.Fields[j]
		values[i] = node.Values[j]
		fields[i].ParentIndex = i
		values[i].ParentIndex = i
	}
	node.Fields = fields
	node.Values = values
}
