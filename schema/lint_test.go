package schema

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lintDoc(t *testing.T, doc *Document, opts *LintOptions, peers ...*Document) []Finding {
	t.Helper()
	set := mustSet(t, append([]*Document{doc}, peers...)...)
	g, _ := BuildGraph(set)
	return Lint(doc, g, opts)
}

func findingStrings(findings []Finding) []string {
	res := make([]string, len(findings))
	for i, f := range findings {
		res[i] = fmt.Sprintf("%s|%s|%s", f.Severity, f.Path, f.Message)
	}
	return res
}

func TestLintClean(t *testing.T) {
	point := mustDoc(t, "/shapes/point", pointSrc)
	line := mustDoc(t, "/shapes/line", lineSrc)
	set := mustSet(t, point, line)
	g, err := BuildGraph(set)
	if err != nil {
		t.Fatal(err)
	}
	for _, doc := range set.Documents() {
		if findings := Lint(doc, g, nil); len(findings) != 0 {
			t.Errorf("%s: unexpected findings: %v", doc.ID, findings)
		}
	}
}

func TestLintFindings(t *testing.T) {
	const src = `{
		"type": "object",
		"title": "messy",
		"properties": {
			"a": {"type": "strnig"},
			"b": {"frobnicate": true},
			"c": {"type": "string", "$comment": 3}
		},
		"required": ["b", "a", "zz"]
	}`
	doc := mustDoc(t, "/messy", src)
	got := findingStrings(lintDoc(t, doc, nil))
	// one pre-order walk: each node's key-order findings come right
	// before its content findings, parents before children
	want := []string{
		`warning||key "title" out of canonical order, after "type"`,
		`error|properties.a.type|unsupported type "strnig"`,
		`error|properties.b.frobnicate|unsupported keyword "frobnicate"`,
		`warning|properties.c|key "$comment" out of canonical order, after "type"`,
		`error|properties.c.$comment|$comment must be a string`,
		`warning||object does not restrict additionalProperties`,
		`error|required|required property "zz" is not declared`,
		`warning||property "c" is declared but not required`,
		`warning|required|required not in property declaration order`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestLintReference(t *testing.T) {
	const src = `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"p": {"$ref": "#/$defs/nope", "type": "string"}
		},
		"required": ["p"]
	}`
	doc := mustDoc(t, "/refs", src)
	got := findingStrings(lintDoc(t, doc, nil))
	want := []string{
		`error|properties.p.type|keyword "type" not allowed alongside $ref`,
		`error|properties.p|dangling reference: "#/$defs/nope"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestLintEnum(t *testing.T) {
	doc := mustDoc(t, "/enum", `{"type": "string", "enum": ["a", 1, []]}`)
	got := findingStrings(lintDoc(t, doc, nil))
	want := []string{
		`warning|enum[1]|enum value at [1] does not match type "string"`,
		`warning|enum[2]|enum value at [2] is not primitive`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}

	doc = mustDoc(t, "/enum", `{"enum": []}`)
	got = findingStrings(lintDoc(t, doc, nil))
	want = []string{`error|enum|empty enum`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestLintCompositions(t *testing.T) {
	doc := mustDoc(t, "/comp", `{"oneOf": []}`)
	got := findingStrings(lintDoc(t, doc, nil))
	want := []string{`error|oneOf|empty composition oneOf`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}

	doc = mustDoc(t, "/comp", `{"type": "string", "oneOf": [{"type": "string"}]}`)
	got = findingStrings(lintDoc(t, doc, nil))
	want = []string{`error|type|keyword "type" not allowed alongside a composition`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestLintConstraints(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			"pattern on non-string",
			`{"type": "integer", "pattern": "x+"}`,
			[]string{`error|pattern|pattern requires type "string"`},
		},
		{
			"bounds on non-numeric",
			`{"type": "string", "minimum": 0}`,
			[]string{`error|minimum|minimum requires a numeric type`},
		},
		{
			"non-numeric bound",
			`{"type": "integer", "minimum": "low"}`,
			[]string{`error|minimum|minimum must be a number`},
		},
		{
			"array without items",
			`{"type": "array"}`,
			[]string{`error||array schema missing items`},
		},
		{
			"items on non-array",
			`{"type": "string", "items": {"type": "string"}}`,
			[]string{`error|items|items requires type "array"`},
		},
		{
			"nested defs",
			`{"type": "array", "items": {"type": "string", "$defs": {"x": {"type": "string"}}}}`,
			[]string{`error|items.$defs|$defs is only supported at the document root`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "/constraints", tt.src)
			got := findingStrings(lintDoc(t, doc, nil))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLintRules(t *testing.T) {
	doc := mustDoc(t, "/rules", `{"type": "string"}`)
	opts := &LintOptions{
		Rules: []Rule{
			{
				Name:     "root-title",
				Expr:     `path == "" && !has("title")`,
				Severity: Warning,
				Message:  "root schema should carry a title",
			},
			{
				Name: "broken",
				Expr: `((`,
			},
		},
	}
	got := findingStrings(lintDoc(t, doc, opts))
	if len(got) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(got), got)
	}
	want := `error||rule "broken" does not compile`
	if len(got[0]) < len(want) || got[0][:len(want)] != want {
		t.Errorf("got %q, want prefix %q", got[0], want)
	}
	if got[1] != `warning||root schema should carry a title` {
		t.Errorf("unexpected rule finding %q", got[1])
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors([]Finding{{Severity: Warning}}) {
		t.Error("warnings alone count as errors")
	}
	if !HasErrors([]Finding{{Severity: Warning}, {Severity: Error}}) {
		t.Error("error finding not detected")
	}
}
