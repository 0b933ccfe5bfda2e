package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schema-tools/go-schema-tools/debug"
	"github.com/schema-tools/go-schema-tools/ir"
)

// Combine merges the reference closure of root into a single document:
// every schema the root transitively references becomes an entry of the
// merged definition table, references are rewritten to local fragments,
// and everything unreachable is dropped. The merge is all-or-nothing:
// any unresolvable reference in the closure aborts with a CombinerError
// and no partial output.
//
// Slot names keep the target's own name when free. When two targets from
// different documents want the same name, later arrivals take the suffix
// "_<docID>" with slashes mapped to underscores, so reruns over the same
// inputs produce identical output.
func Combine(root *Document, set *DocumentSet, g *Graph) (*Document, error) {
	c := &combiner{
		set:    set,
		g:      g,
		slots:  map[Location]string{},
		used:   map[string]bool{},
		bodies: map[string]*ir.Node{},
	}

	body := root.Root.Clone()
	ir.Delete(body, DefsKey)
	if err := c.rewriteTop(root.Root, body, root); err != nil {
		return nil, err
	}
	if err := c.checkAliases(); err != nil {
		return nil, err
	}
	if len(c.order) > 0 {
		defs := &ir.Node{Type: ir.ObjectType}
		for _, loc := range c.order {
			slot := c.slots[loc]
			ir.Put(defs, slot, c.bodies[slot])
		}
		ir.Put(body, DefsKey, defs)
	}
	if debug.Combine() {
		debug.Logf("combine %s: %d slots from %d documents\n", root.ID, len(c.order), set.Len())
	}
	return NewDocument(root.ID, body)
}

type combiner struct {
	set *DocumentSet
	g   *Graph

	slots  map[Location]string // target -> slot, dedups shared targets
	used   map[string]bool
	order  []Location // discovery order, fixes output layout
	bodies map[string]*ir.Node
}

// rewriteTop walks a document body, skipping its definition table:
// definitions join the closure only by being referenced.
func (c *combiner) rewriteTop(orig, clone *ir.Node, doc *Document) error {
	if orig.Type != ir.ObjectType {
		return c.rewrite(orig, clone, doc)
	}
	if IsRefNode(orig) {
		return c.rewriteRef(orig, clone, doc)
	}
	for i, f := range orig.Fields {
		if f.String == DefsKey {
			continue
		}
		if err := c.rewrite(orig.Values[i], ir.Get(clone, f.String), doc); err != nil {
			return err
		}
	}
	return nil
}

// rewrite walks orig and clone in lockstep. orig stays inside its
// original document so paths and graph lookups stay valid; clone is the
// copy that receives the rewritten references.
func (c *combiner) rewrite(orig, clone *ir.Node, doc *Document) error {
	if IsRefNode(orig) {
		return c.rewriteRef(orig, clone, doc)
	}
	for i := range orig.Values {
		if err := c.rewrite(orig.Values[i], clone.Values[i], doc); err != nil {
			return err
		}
	}
	return nil
}

func (c *combiner) rewriteRef(orig, clone *ir.Node, from *Document) error {
	loc := Location{DocID: from.ID, Path: orig.Path()}
	fail := func(ref string, err error) error {
		return &CombinerError{
			Kind:  UnresolvableReference,
			DocID: loc.DocID,
			Path:  loc.Path,
			Ref:   ref,
			Err:   err,
		}
	}
	refVal := ir.Get(orig, RefKey)
	if refVal.Type != ir.StringType {
		return fail("", errors.New(RefKey+" is not a string"))
	}
	if rerr := c.g.ErrAt(loc); rerr != nil {
		return fail(refVal.String, rerr)
	}
	ref, err := ParseReference(refVal.String)
	if err != nil {
		return fail(refVal.String, err)
	}
	target, targetLoc, err := Resolve(c.set, from, ref)
	if err != nil {
		return fail(refVal.String, err)
	}

	slot, known := c.slots[targetLoc]
	if !known {
		slot = c.claim(preferredSlot(ref), targetLoc.DocID)
		// register before building the body so reference cycles
		// land on the already-named slot instead of recursing
		c.slots[targetLoc] = slot
		c.order = append(c.order, targetLoc)
		targetDoc := from
		if !ref.IsLocal() {
			targetDoc, _ = c.set.Get(ref.DocID())
		}
		body, err := c.slotBody(target, targetDoc)
		if err != nil {
			return err
		}
		c.bodies[slot] = body
	}
	ir.Put(clone, RefKey, ir.FromString(FromFragment(slot).String()))
	return nil
}

// slotBody copies the target schema with its references rewritten. A
// whole-document target contributes its root schema without the
// definition table; the entries it references arrive as slots of their
// own.
func (c *combiner) slotBody(target *ir.Node, doc *Document) (*ir.Node, error) {
	body := target.Clone()
	if target == doc.Root {
		ir.Delete(body, DefsKey)
		if err := c.rewriteTop(target, body, doc); err != nil {
			return nil, err
		}
		return body, nil
	}
	if err := c.rewrite(target, body, doc); err != nil {
		return nil, err
	}
	return body, nil
}

func preferredSlot(ref *Reference) string {
	if ref.Fragment != "" {
		return ref.Fragment
	}
	return ref.PathName
}

func (c *combiner) claim(name, docID string) string {
	if !c.used[name] {
		c.used[name] = true
		return name
	}
	alt := name + "_" + strings.Trim(strings.ReplaceAll(docID, "/", "_"), "_")
	slot := alt
	for i := 2; c.used[slot]; i++ {
		slot = fmt.Sprintf("%s%d", alt, i)
	}
	c.used[slot] = true
	return slot
}

// checkAliases rejects definition cycles made only of bare references.
// Structural cycles through real schemas are fine; a loop of aliases
// never bottoms out in content.
func (c *combiner) checkAliases() error {
	for _, loc := range c.order {
		start := c.slots[loc]
		seen := map[string]bool{start: true}
		cur := start
		for {
			next, ok := aliasTarget(c.bodies[cur])
			if !ok {
				break
			}
			if seen[next] {
				return &CombinerError{
					Kind:  UnboundedClosure,
					DocID: loc.DocID,
					Path:  loc.Path,
					Ref:   ir.Get(c.bodies[cur], RefKey).String,
				}
			}
			seen[next] = true
			cur = next
		}
	}
	return nil
}

// aliasTarget reports the slot a pure alias points to: an object whose
// only non-metadata member is a local fragment $ref.
func aliasTarget(body *ir.Node) (string, bool) {
	if body == nil || !IsRefNode(body) {
		return "", false
	}
	for _, f := range body.Fields {
		if f.String != RefKey && !metadataKeys[f.String] {
			return "", false
		}
	}
	v := ir.Get(body, RefKey)
	if v.Type != ir.StringType {
		return "", false
	}
	prefix := "#/" + DefsKey + "/"
	if !strings.HasPrefix(v.String, prefix) {
		return "", false
	}
	return strings.TrimPrefix(v.String, prefix), true
}
