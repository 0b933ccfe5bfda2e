// Package encode writes ir.Node trees as JSON text.
//
// Output is deterministic: object fields are emitted in tree order, which
// the parser and the combiner both preserve. Colors are for terminals and
// never change the byte content seen by a non-tty consumer.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/schema-tools/go-schema-tools/ir"
)

type EncState struct {
	depth, indent int
	wire          bool

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.Color == nil {
		es.Color = noColor
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeString(w, es.Color(ir.NullType, ValueColor, "null"))
	case ir.BoolType:
		return writeString(w, es.Color(ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NumberType:
		return writeString(w, es.Color(ir.NumberType, ValueColor, numberString(node)))
	case ir.StringType:
		q, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		return writeString(w, es.Color(ir.StringType, ValueColor, string(q)))
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	}
	return fmt.Errorf("cannot encode node of type %s", node.Type)
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, es.Color(ir.ArrayType, SepColor, "[]"))
	}
	if err := writeString(w, es.Color(ir.ArrayType, SepColor, "[")); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, es.Color(ir.ArrayType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, es.Color(ir.ArrayType, SepColor, "]"))
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, es.Color(ir.ObjectType, SepColor, "{}"))
	}
	if err := writeString(w, es.Color(ir.ObjectType, SepColor, "{")); err != nil {
		return err
	}
	es.depth++
	for i, f := range node.Fields {
		if i > 0 {
			if err := writeString(w, es.Color(ir.ObjectType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		q, err := json.Marshal(f.String)
		if err != nil {
			return err
		}
		if err := writeString(w, es.Color(ir.ObjectType, FieldColor, string(q))); err != nil {
			return err
		}
		sep := ": "
		if es.wire {
			sep = ":"
		}
		if err := writeString(w, es.Color(ir.ObjectType, SepColor, sep)); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, es.Color(ir.ObjectType, SepColor, "}"))
}

func numberString(node *ir.Node) string {
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10)
	}
	if node.Float64 != nil {
		return strconv.FormatFloat(*node.Float64, 'g', -1, 64)
	}
	return node.Number
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.depth*es.indent))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
