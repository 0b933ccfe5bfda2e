package schema

import (
	"testing"

	"github.com/schema-tools/go-schema-tools/ir"
)

func fieldNames(node *ir.Node) []string {
	names := make([]string, len(node.Fields))
	for i, f := range node.Fields {
		names[i] = f.String
	}
	return names
}

func TestCanonicalize(t *testing.T) {
	const src = `{
		"required": ["a"],
		"woz": 1,
		"type": "object",
		"bar": 2,
		"properties": {
			"a": {"pattern": "x+", "type": "string", "title": "a"}
		},
		"additionalProperties": false,
		"title": "scrambled"
	}`
	doc := mustDoc(t, "/scrambled", src)
	canon := Canonicalize(doc)

	want := []string{"title", "type", "additionalProperties", "properties", "required", "woz", "bar"}
	got := fieldNames(canon.Root)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	prop := ir.Get(ir.Get(canon.Root, "properties"), "a")
	wantProp := []string{"title", "type", "pattern"}
	gotProp := fieldNames(prop)
	for i := range wantProp {
		if gotProp[i] != wantProp[i] {
			t.Fatalf("property keys %v, want %v", gotProp, wantProp)
		}
	}

	// input untouched
	if fieldNames(doc.Root)[0] != "required" {
		t.Error("Canonicalize modified its input")
	}
	// fixed point
	again := Canonicalize(canon)
	if !ir.Equal(again.Root, canon.Root) {
		t.Error("Canonicalize is not idempotent")
	}
}

func TestCanonicalizeSilencesOrderFindings(t *testing.T) {
	doc := mustDoc(t, "/scrambled", `{"type": "string", "title": "t", "pattern": "x"}`)
	if got := findingStrings(lintDoc(t, doc, nil)); len(got) != 1 {
		t.Fatalf("scrambled doc findings: %v", got)
	}
	canon := Canonicalize(doc)
	if got := findingStrings(lintDoc(t, canon, nil)); len(got) != 0 {
		t.Errorf("canonical doc findings: %v", got)
	}
}
