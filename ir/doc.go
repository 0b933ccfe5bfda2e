// Package ir provides the tree representation of schema documents.
//
// # Overview
//
// All schema documents, whether parsed from JSON or YAML text or created
// programmatically, are represented as ir.Node trees. The IR contains no
// position information from input documents, making it purely semantic.
//
// A Node represents a single value: null, boolean, number, string, object
// or array. Objects keep their fields in declaration order in the parallel
// Fields/Values slices; that order is authoritative and survives cloning
// and encoding, which is what makes lint and combine output deterministic.
//
// Each node maintains parent-child relationships (Parent, ParentIndex,
// ParentField), allowing navigation through the tree and cheap derivation
// of a node's Path.
//
// # Ownership
//
// A node belongs to exactly one tree. Consumers that need to move a
// subtree between documents must Clone it; the schema package never
// aliases nodes across documents.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("type"), Val: ir.FromString("object")},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// FromMap sorts keys for reproducibility; FromKeyVals preserves the given
// order and is what the parser uses.
package ir
