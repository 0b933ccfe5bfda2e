// Package schema implements the restricted JSON Schema dialect: typed
// documents over the ir tree, a registry of documents keyed by id, the
// reference graph and its resolver, the linter, and the combiner that
// merges a document's reference closure into one self-contained schema.
//
// Everything here is read-only over its inputs. BuildGraph and Lint
// report problems without failing; Combine is the one operation that
// refuses bad input, because its output must stand alone.
package schema
