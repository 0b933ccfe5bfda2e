package schema

import (
	"errors"

	"github.com/schema-tools/go-schema-tools/debug"
	"github.com/schema-tools/go-schema-tools/ir"
)

// Location identifies a node by document ID and tree path.
type Location struct {
	DocID string
	Path  string
}

func (l Location) String() string {
	if l.Path == "" {
		return l.DocID
	}
	return l.DocID + " ." + l.Path
}

// Edge is one resolved reference: the referencing node and the node its
// reference lands on, one hop, no chain expansion.
type Edge struct {
	From Location
	To   Location
	Ref  *Reference
}

// Graph is the reference graph of one document set. It may contain
// cycles; consumers traverse it with their own visiting sets. Reference
// nodes whose resolution failed carry a ResolverError instead of an edge.
type Graph struct {
	set    *DocumentSet
	edges  []Edge
	byFrom map[Location]int
	errPos map[Location]*ResolverError
	errs   []*ResolverError
}

// BuildGraph walks every node of every document and resolves each
// reference marker one hop. The returned graph is always usable; the
// error, if non-nil, aggregates the resolution failures recorded in it,
// for callers that want to fail fast.
func BuildGraph(set *DocumentSet) (*Graph, error) {
	g := &Graph{
		set:    set,
		byFrom: make(map[Location]int),
		errPos: make(map[Location]*ResolverError),
	}
	for _, doc := range set.Documents() {
		doc.Root.Visit(func(node *ir.Node, isPost bool) (bool, error) {
			if isPost || !IsRefNode(node) {
				return true, nil
			}
			g.addRef(doc, node)
			return true, nil
		})
	}
	if len(g.errs) == 0 {
		return g, nil
	}
	errs := make([]error, len(g.errs))
	for i, e := range g.errs {
		errs[i] = e
	}
	return g, errors.Join(errs...)
}

func (g *Graph) addRef(doc *Document, node *ir.Node) {
	from := Location{DocID: doc.ID, Path: node.Path()}
	refNode := ir.Get(node, RefKey)
	if refNode.Type != ir.StringType {
		g.fail(from, &ResolverError{
			Kind:   UnsupportedReferenceForm,
			Ref:    "",
			Reason: "non-string " + RefKey,
		})
		return
	}
	ref, err := ParseReference(refNode.String)
	if err != nil {
		var rerr *ResolverError
		if errors.As(err, &rerr) {
			g.fail(from, rerr)
		}
		return
	}
	_, to, err := Resolve(g.set, doc, ref)
	if err != nil {
		var rerr *ResolverError
		if errors.As(err, &rerr) {
			g.fail(from, rerr)
		}
		return
	}
	if debug.Resolve() {
		debug.Logf("resolve %s -> %s\n", from, to)
	}
	g.byFrom[from] = len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Ref: ref})
}

func (g *Graph) fail(from Location, rerr *ResolverError) {
	rerr.DocID = from.DocID
	rerr.Path = from.Path
	if debug.Resolve() {
		debug.Logf("resolve %s: %v\n", from, rerr)
	}
	g.errPos[from] = rerr
	g.errs = append(g.errs, rerr)
}

// Set returns the document set the graph was built over.
func (g *Graph) Set() *DocumentSet {
	return g.set
}

// Edges returns all resolved edges in deterministic build order.
func (g *Graph) Edges() []Edge {
	res := make([]Edge, len(g.edges))
	copy(res, g.edges)
	return res
}

// EdgeFrom returns the edge whose referencing node sits at loc.
func (g *Graph) EdgeFrom(loc Location) (Edge, bool) {
	i, ok := g.byFrom[loc]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// ErrAt returns the resolution error recorded for the reference at loc,
// or nil.
func (g *Graph) ErrAt(loc Location) *ResolverError {
	return g.errPos[loc]
}

// Errs returns all resolution errors in deterministic build order.
func (g *Graph) Errs() []*ResolverError {
	res := make([]*ResolverError, len(g.errs))
	copy(res, g.errs)
	return res
}

// IsRefNode reports whether node is a reference marker: an object with a
// $ref member.
func IsRefNode(node *ir.Node) bool {
	return node.Type == ir.ObjectType && ir.Get(node, RefKey) != nil
}

// Resolve resolves ref one hop from the referencing document. It never
// recurses through chains of references; a chain is multiple edges for
// graph consumers to traverse.
func Resolve(set *DocumentSet, from *Document, ref *Reference) (*ir.Node, Location, error) {
	target := from
	if !ref.IsLocal() {
		id := ref.DocID()
		doc, ok := set.Get(id)
		if !ok {
			return nil, Location{}, &ResolverError{
				Kind: UnknownDocument,
				Ref:  ref.String(),
			}
		}
		target = doc
	}
	if ref.Fragment == "" {
		return target.Root, Location{DocID: target.ID}, nil
	}
	def := target.Def(ref.Fragment)
	if def == nil {
		return nil, Location{}, &ResolverError{
			Kind: DanglingReference,
			Ref:  ref.String(),
		}
	}
	return def, Location{DocID: target.ID, Path: def.Path()}, nil
}
