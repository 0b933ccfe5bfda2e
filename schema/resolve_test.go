package schema

import (
	"testing"

	"github.com/schema-tools/go-schema-tools/parse"
)

func mustDoc(t *testing.T, id, src string) *Document {
	t.Helper()
	node, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", id, err)
	}
	doc, err := NewDocument(id, node)
	if err != nil {
		t.Fatalf("document %s: %v", id, err)
	}
	return doc
}

func mustSet(t *testing.T, docs ...*Document) *DocumentSet {
	t.Helper()
	set := NewDocumentSet()
	for _, doc := range docs {
		if err := set.Add(doc); err != nil {
			t.Fatal(err)
		}
	}
	return set
}

const pointSrc = `{
	"title": "point",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"x": {"$ref": "#/$defs/coord"},
		"y": {"$ref": "#/$defs/coord"}
	},
	"required": ["x", "y"],
	"$defs": {
		"coord": {"type": "number"}
	}
}`

const lineSrc = `{
	"title": "line",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"from": {"$ref": "/shapes/point"},
		"to": {"$ref": "/shapes/point"},
		"width": {"$ref": "/shapes/point#/$defs/coord"}
	},
	"required": ["from", "to", "width"]
}`

func TestBuildGraph(t *testing.T) {
	set := mustSet(t,
		mustDoc(t, "/shapes/point", pointSrc),
		mustDoc(t, "/shapes/line", lineSrc),
	)
	g, err := BuildGraph(set)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	edges := g.Edges()
	if len(edges) != 5 {
		t.Fatalf("got %d edges, want 5", len(edges))
	}
	from := Location{DocID: "/shapes/line", Path: "properties.from"}
	e, ok := g.EdgeFrom(from)
	if !ok {
		t.Fatalf("no edge from %s", from)
	}
	if e.To.DocID != "/shapes/point" || e.To.Path != "" {
		t.Errorf("edge lands at %s, want /shapes/point root", e.To)
	}
	from = Location{DocID: "/shapes/line", Path: "properties.width"}
	e, ok = g.EdgeFrom(from)
	if !ok {
		t.Fatalf("no edge from %s", from)
	}
	if e.To.DocID != "/shapes/point" || e.To.Path != "$defs.coord" {
		t.Errorf("edge lands at %s, want /shapes/point $defs.coord", e.To)
	}
}

func TestBuildGraphErrors(t *testing.T) {
	const badSrc = `{
		"type": "object",
		"properties": {
			"a": {"$ref": "#/$defs/missing"},
			"b": {"$ref": "/no/such/doc"},
			"c": {"$ref": "relative/ref"}
		},
		"required": ["a", "b", "c"],
		"additionalProperties": false
	}`
	set := mustSet(t, mustDoc(t, "/bad", badSrc))
	g, err := BuildGraph(set)
	if err == nil {
		t.Fatal("BuildGraph: no error")
	}
	if g == nil {
		t.Fatal("BuildGraph: nil graph with error")
	}
	tests := []struct {
		path string
		kind ErrorKind
	}{
		{"properties.a", DanglingReference},
		{"properties.b", UnknownDocument},
		{"properties.c", UnsupportedReferenceForm},
	}
	for _, tt := range tests {
		rerr := g.ErrAt(Location{DocID: "/bad", Path: tt.path})
		if rerr == nil {
			t.Errorf("no error at %s", tt.path)
			continue
		}
		if rerr.Kind != tt.kind {
			t.Errorf("error at %s: kind %v, want %v", tt.path, rerr.Kind, tt.kind)
		}
		if rerr.DocID != "/bad" || rerr.Path != tt.path {
			t.Errorf("error at %s located at %s .%s", tt.path, rerr.DocID, rerr.Path)
		}
	}
	if n := len(g.Errs()); n != 3 {
		t.Errorf("got %d errors, want 3", n)
	}
}

func TestResolve(t *testing.T) {
	point := mustDoc(t, "/shapes/point", pointSrc)
	line := mustDoc(t, "/shapes/line", lineSrc)
	set := mustSet(t, point, line)

	ref, err := ParseReference("#/$defs/coord")
	if err != nil {
		t.Fatal(err)
	}
	node, loc, err := Resolve(set, point, ref)
	if err != nil {
		t.Fatalf("local resolve: %v", err)
	}
	if node != point.Def("coord") {
		t.Error("local resolve: wrong node")
	}
	if loc.DocID != "/shapes/point" || loc.Path != "$defs.coord" {
		t.Errorf("local resolve: location %s", loc)
	}

	ref, err = ParseReference("/shapes/point")
	if err != nil {
		t.Fatal(err)
	}
	node, loc, err = Resolve(set, line, ref)
	if err != nil {
		t.Fatalf("whole-doc resolve: %v", err)
	}
	if node != point.Root {
		t.Error("whole-doc resolve: wrong node")
	}
	if loc.DocID != "/shapes/point" || loc.Path != "" {
		t.Errorf("whole-doc resolve: location %s", loc)
	}

	ref, err = ParseReference("/shapes/point#/$defs/nope")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err = Resolve(set, line, ref); err == nil {
		t.Error("dangling resolve: no error")
	}
}
