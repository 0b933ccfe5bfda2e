// Package parse turns JSON or YAML bytes into ir.Node trees.
//
// The schema core never reads text itself; this package is the ingestion
// boundary for the CLI and the LSP server. YAML 1.2 is a superset of JSON,
// so a single decoder covers both input kinds, and ordered-map decoding
// keeps object key order intact. The decoder rejects duplicate object
// keys, so every parsed object has unique keys.
package parse

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/schema-tools/go-schema-tools/ir"
)

// Parse decodes one JSON or YAML document into an ir.Node. A document
// with duplicate object keys is an error: the decoder refuses it, which
// matches the uniqueness every consumer of the tree assumes.
func Parse(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromAny(v)
}

func fromAny(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return ir.FromFloat(float64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case time.Time:
		return ir.FromString(t.Format(time.RFC3339)), nil
	case []any:
		elts := make([]*ir.Node, 0, len(t))
		for _, e := range t {
			n, err := fromAny(e)
			if err != nil {
				return nil, err
			}
			elts = append(elts, n)
		}
		return ir.FromSlice(elts), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(t))
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string object key %v", ErrParse, item.Key)
			}
			val, err := fromAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	default:
		return nil, fmt.Errorf("%w: unhandled value of type %T", ErrParse, v)
	}
}
