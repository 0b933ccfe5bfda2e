package parse

import (
	"bytes"
	"errors"
	"testing"

	"github.com/schema-tools/go-schema-tools/encode"
	"github.com/schema-tools/go-schema-tools/ir"
)

func TestParseKeepsKeyOrder(t *testing.T) {
	node, err := Parse([]byte(`{"zebra": 1, "apple": 2, "mango": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"zebra", "apple", "mango"}
	for i, f := range node.Fields {
		if f.String != want[i] {
			t.Fatalf("field %d = %q, want %q", i, f.String, want[i])
		}
	}
}

func TestParseValues(t *testing.T) {
	node, err := Parse([]byte(`{"i": 3, "n": -4, "f": 2.5, "b": true, "z": null, "s": "x", "a": [1, [2]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(node, "i"); v.Type != ir.NumberType || v.Int64 == nil || *v.Int64 != 3 {
		t.Errorf("i = %+v", v)
	}
	if v := ir.Get(node, "n"); v.Int64 == nil || *v.Int64 != -4 {
		t.Errorf("n = %+v", v)
	}
	if v := ir.Get(node, "f"); v.Float64 == nil || *v.Float64 != 2.5 {
		t.Errorf("f = %+v", v)
	}
	if v := ir.Get(node, "b"); v.Type != ir.BoolType || !v.Bool {
		t.Errorf("b = %+v", v)
	}
	if v := ir.Get(node, "z"); v.Type != ir.NullType {
		t.Errorf("z = %+v", v)
	}
	if v := ir.Get(node, "s"); v.Type != ir.StringType || v.String != "x" {
		t.Errorf("s = %+v", v)
	}
	a := ir.Get(node, "a")
	if a.Type != ir.ArrayType || len(a.Values) != 2 || a.Values[1].Type != ir.ArrayType {
		t.Errorf("a = %+v", a)
	}
}

func TestParseYAML(t *testing.T) {
	src := `
title: point
type: object
properties:
  x:
    type: number
required: [x]
`
	node, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(node, "title").String != "point" {
		t.Error("yaml title")
	}
	x := ir.Get(ir.Get(node, "properties"), "x")
	if x == nil || ir.Get(x, "type").String != "number" {
		t.Error("yaml nesting")
	}
	req := ir.Get(node, "required")
	if req.Type != ir.ArrayType || req.Values[0].String != "x" {
		t.Error("yaml flow array")
	}
}

func TestParseRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1, "a": 2}`))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("duplicate key err = %v, want ErrParse", err)
	}
}

func TestParseScalarKeys(t *testing.T) {
	// YAML scalar keys arrive as strings
	node, err := Parse([]byte(`{1: 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Fields) != 1 || node.Fields[0].String != "1" {
		t.Errorf("fields = %v, want key %q", fieldKeys(node), "1")
	}
}

func fieldKeys(node *ir.Node) []string {
	keys := make([]string, len(node.Fields))
	for i, f := range node.Fields {
		keys[i] = f.String
	}
	return keys
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		`{"a": `,
		`[1,`,
	} {
		if _, err := Parse([]byte(src)); !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q) err = %v, want ErrParse", src, err)
		}
	}
}

func TestParseEncodeRoundTrip(t *testing.T) {
	const src = `{"a":1,"b":[true,null,"s"],"c":1.5,"d":{}}`
	node, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, encode.EncodeWire(true)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != src+"\n" {
		t.Errorf("round trip = %q, want %q", got, src+"\n")
	}
}
