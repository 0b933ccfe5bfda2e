package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path returns the dotted path of this node's position in its tree.
//
// Examples:
//   - Root node → ""
//   - Object field "a" → "a"
//   - Array element at index 0 → "[0]"
//   - Nested object "a.b" → "a.b"
//   - Mixed "a[0].b" → "a[0].b"
//
// Fields containing '.', '[', ']', '"' or spaces are quoted.
func (node *Node) Path() string {
	if node.Parent == nil {
		return ""
	}
	switch node.Parent.Type {
	case ObjectType:
		f := node.ParentField
		prefix := node.Parent.Path()
		if pathQuoteField(f) {
			f = strconv.Quote(f)
		}
		if prefix == "" {
			return f
		}
		return prefix + "." + f

	case ArrayType:
		return node.Parent.Path() + "[" + strconv.Itoa(node.ParentIndex) + "]"

	default:
		panic("parent but not in container")
	}
}

func pathQuoteField(f string) bool {
	if f == "" {
		return true
	}
	return strings.ContainsAny(f, ".[]\" \t")
}

// A Step is one entry of a parsed path: either an object field or an
// array index.
type Step struct {
	Field   string
	Index   int
	IsIndex bool
}

// ParsePath parses a dotted path as produced by Node.Path.
func ParsePath(p string) ([]Step, error) {
	var steps []Step
	i := 0
	n := len(p)
	expectField := true
	for i < n {
		switch {
		case p[i] == '[':
			j := strings.IndexByte(p[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated index in %q", ErrBadPath, p)
			}
			idx, err := strconv.Atoi(p[i+1 : i+j])
			if err != nil {
				return nil, fmt.Errorf("%w: bad index in %q: %v", ErrBadPath, p, err)
			}
			steps = append(steps, Step{Index: idx, IsIndex: true})
			i += j + 1
			expectField = false
		case p[i] == '.':
			if expectField {
				return nil, fmt.Errorf("%w: empty field in %q", ErrBadPath, p)
			}
			i++
			expectField = true
		case p[i] == '"':
			rest := p[i:]
			end := quotedEnd(rest)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quote in %q", ErrBadPath, p)
			}
			f, err := strconv.Unquote(rest[:end])
			if err != nil {
				return nil, fmt.Errorf("%w: bad quoted field in %q: %v", ErrBadPath, p, err)
			}
			steps = append(steps, Step{Field: f})
			i += end
			expectField = false
		default:
			j := strings.IndexAny(p[i:], ".[")
			if j < 0 {
				j = n - i
			}
			if j == 0 {
				return nil, fmt.Errorf("%w: empty field in %q", ErrBadPath, p)
			}
			steps = append(steps, Step{Field: p[i : i+j]})
			i += j
			expectField = false
		}
	}
	if expectField && len(steps) > 0 {
		return nil, fmt.Errorf("%w: trailing '.' in %q", ErrBadPath, p)
	}
	return steps, nil
}

// quotedEnd returns the length of the quoted string starting s, including
// both quotes, or -1.
func quotedEnd(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

// GetPath navigates the tree using a dotted path as produced by Path.
//
// Example:
//
//	root.GetPath("a.b.c")
//
// Returns an error if the path doesn't exist or is invalid.
func (node *Node) GetPath(p string) (*Node, error) {
	steps, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	res := node
	for _, step := range steps {
		if step.IsIndex {
			if res.Type != ArrayType {
				return nil, fmt.Errorf("%w: expected array at %q, got %s", ErrBadPath, p, res.Type)
			}
			if step.Index < 0 || step.Index >= len(res.Values) {
				return nil, fmt.Errorf("%w: index %d out of bounds (len %d)", ErrBadPath, step.Index, len(res.Values))
			}
			res = res.Values[step.Index]
			continue
		}
		if res.Type != ObjectType {
			return nil, fmt.Errorf("%w: expected object at %q, got %s", ErrBadPath, p, res.Type)
		}
		next := Get(res, step.Field)
		if next == nil {
			return nil, fmt.Errorf("%w: no field %q", ErrBadPath, step.Field)
		}
		res = next
	}
	return res, nil
}
