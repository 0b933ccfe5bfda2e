package schema

import (
	"fmt"
	"strings"

	"github.com/schema-tools/go-schema-tools/debug"
	"github.com/schema-tools/go-schema-tools/ir"
)

type Severity int

const (
	Warning Severity = iota + 1
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "<unknown severity>"
}

// Finding is one lint result. Findings never mutate their document and
// are reported in pre-order document traversal order, stable across runs.
type Finding struct {
	Severity Severity
	DocID    string
	Path     string
	Message  string
}

func (f Finding) String() string {
	loc := f.DocID
	if f.Path != "" {
		loc += " ." + f.Path
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, loc, f.Message)
}

// HasErrors reports whether findings contain at least one Error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == Error {
			return true
		}
	}
	return false
}

// LintOptions configure a lint run. The supported keyword set is
// configuration, not contract: a nil Keywords map means
// DefaultKeywords(). Rules are additional expression rules evaluated per
// schema node.
type LintOptions struct {
	Keywords map[string]bool
	Rules    []Rule
}

// Lint checks one document against the supported schema subset. It is
// read-only and never fails: every problem is a finding. Error findings
// conventionally block combining; Warning findings do not.
func Lint(doc *Document, g *Graph, opts *LintOptions) []Finding {
	l := &linter{
		doc:      doc,
		g:        g,
		keywords: DefaultKeywords(),
	}
	if opts != nil && opts.Keywords != nil {
		l.keywords = opts.Keywords
	}
	if opts != nil {
		var findings []Finding
		l.rules, findings = compileRules(doc.ID, opts.Rules)
		l.findings = findings
	}

	l.schema(doc.Root, true)

	if debug.Lint() {
		for _, f := range l.findings {
			debug.Logf("lint %s\n", f)
		}
	}
	return l.findings
}

type linter struct {
	doc      *Document
	g        *Graph
	keywords map[string]bool
	rules    []compiledRule
	findings []Finding
}

func (l *linter) errf(node *ir.Node, format string, args ...any) {
	l.report(Error, node, format, args...)
}

func (l *linter) warnf(node *ir.Node, format string, args ...any) {
	l.report(Warning, node, format, args...)
}

func (l *linter) report(sev Severity, node *ir.Node, format string, args ...any) {
	l.findings = append(l.findings, Finding{
		Severity: sev,
		DocID:    l.doc.ID,
		Path:     node.Path(),
		Message:  fmt.Sprintf(format, args...),
	})
}

// schema lints one schema position and recurses into its subschemas.
func (l *linter) schema(node *ir.Node, isRoot bool) {
	if node.Type != ir.ObjectType {
		l.errf(node, "schema must be an object, got %s", node.Type)
		return
	}

	l.keyOrder(node)
	l.metadata(node)

	if IsRefNode(node) {
		l.reference(node)
		return
	}

	for i, f := range node.Fields {
		name := f.String
		if !l.keywords[name] {
			l.errf(node.Values[i], "unsupported keyword %q", name)
		}
		if name == DefsKey && !isRoot {
			l.errf(node.Values[i], "%s is only supported at the document root", DefsKey)
		}
	}

	l.compositions(node)
	declared := l.typeConstraint(node)
	l.enum(node, declared)
	l.object(node, declared)
	l.array(node, declared)
	l.scalarConstraints(node, declared)

	for _, r := range l.rules {
		l.rule(r, node)
	}

	if isRoot {
		if defs := ir.Get(node, DefsKey); defs != nil && defs.Type == ir.ObjectType {
			for _, v := range defs.Values {
				l.schema(v, false)
			}
		}
	}
}

// reference lints a reference marker: resolver failures surface here as
// findings, and nothing but metadata may accompany $ref.
func (l *linter) reference(node *ir.Node) {
	for i, f := range node.Fields {
		name := f.String
		if name == RefKey || metadataKeys[name] {
			continue
		}
		l.errf(node.Values[i], "keyword %q not allowed alongside %s", name, RefKey)
	}
	refNode := ir.Get(node, RefKey)
	if refNode.Type != ir.StringType {
		l.errf(refNode, "%s must be a string", RefKey)
		return
	}
	loc := Location{DocID: l.doc.ID, Path: node.Path()}
	if rerr := l.g.ErrAt(loc); rerr != nil {
		msg := fmt.Sprintf("%s: %q", rerr.Kind, refNode.String)
		if rerr.Reason != "" {
			msg += " (" + rerr.Reason + ")"
		}
		l.errf(node, "%s", msg)
	}
}

func (l *linter) metadata(node *ir.Node) {
	for _, key := range []string{IDKey, TitleKey, DescriptionKey, CommentKey} {
		if v := ir.Get(node, key); v != nil && v.Type != ir.StringType {
			l.errf(v, "%s must be a string", key)
		}
	}
	if v := ir.Get(node, ExamplesKey); v != nil && v.Type != ir.ArrayType {
		l.errf(v, "%s must be an array", ExamplesKey)
	}
}

// compositions checks oneOf/allOf/anyOf branches and recurses into them.
func (l *linter) compositions(node *ir.Node) {
	present := []string{}
	for _, key := range []string{AllOfKey, AnyOfKey, OneOfKey} {
		if ir.Get(node, key) != nil {
			present = append(present, key)
		}
	}
	if len(present) == 0 {
		return
	}
	if len(present) > 1 {
		l.errf(node, "conflicting compositions: %s", strings.Join(present, ", "))
	}
	for _, key := range present {
		v := ir.Get(node, key)
		if v.Type != ir.ArrayType {
			l.errf(v, "%s must be an array", key)
			continue
		}
		if len(v.Values) == 0 {
			l.errf(v, "empty composition %s", key)
			continue
		}
		for _, branch := range v.Values {
			l.schema(branch, false)
		}
	}
	for i, f := range node.Fields {
		name := f.String
		if metadataKeys[name] || name == AllOfKey || name == AnyOfKey || name == OneOfKey {
			continue
		}
		if name == DefsKey {
			continue
		}
		l.errf(node.Values[i], "keyword %q not allowed alongside a composition", name)
	}
}

// typeConstraint returns the declared type name, or "".
func (l *linter) typeConstraint(node *ir.Node) string {
	v := ir.Get(node, TypeKey)
	if v == nil {
		return ""
	}
	if v.Type != ir.StringType {
		l.errf(v, "%s must be a string", TypeKey)
		return ""
	}
	if !typeNames[v.String] {
		l.errf(v, "unsupported type %q", v.String)
		return ""
	}
	return v.String
}

func (l *linter) enum(node *ir.Node, declared string) {
	v := ir.Get(node, EnumKey)
	if v != nil {
		if v.Type != ir.ArrayType {
			l.errf(v, "%s must be an array", EnumKey)
		} else if len(v.Values) == 0 {
			l.errf(v, "empty enum")
		} else {
			for i, elt := range v.Values {
				if !elt.Type.IsLeaf() {
					l.warnf(elt, "enum value at [%d] is not primitive", i)
					continue
				}
				if declared != "" && !typeMatches(declared, elt) {
					l.warnf(elt, "enum value at [%d] does not match type %q", i, declared)
				}
			}
		}
	}
	if c := ir.Get(node, ConstKey); c != nil && !c.Type.IsLeaf() {
		l.warnf(c, "%s value is not primitive", ConstKey)
	}
}

func typeMatches(declared string, node *ir.Node) bool {
	switch declared {
	case "string":
		return node.Type == ir.StringType
	case "boolean":
		return node.Type == ir.BoolType
	case "integer":
		return node.Type == ir.NumberType && node.Int64 != nil
	case "number":
		return node.Type == ir.NumberType
	default:
		return false
	}
}

// object checks properties/required/additionalProperties and recurses
// into property subschemas.
func (l *linter) object(node *ir.Node, declared string) {
	props := ir.Get(node, PropertiesKey)
	required := ir.Get(node, RequiredKey)
	addl := ir.Get(node, AdditionalPropertiesKey)
	if props == nil && required == nil && addl == nil {
		return
	}
	if declared != "object" {
		l.errf(node, "object keywords require type %q", "object")
	}
	var propNames []string
	if props != nil {
		if props.Type != ir.ObjectType {
			l.errf(props, "%s must be an object", PropertiesKey)
			props = nil
		} else {
			for _, f := range props.Fields {
				propNames = append(propNames, f.String)
			}
			for _, v := range props.Values {
				l.schema(v, false)
			}
		}
	}
	if addl != nil && addl.Type != ir.BoolType {
		l.errf(addl, "%s must be a boolean", AdditionalPropertiesKey)
		addl = nil
	}
	if addl == nil || addl.Bool {
		l.warnf(node, "object does not restrict %s", AdditionalPropertiesKey)
	}
	if required == nil {
		for _, name := range propNames {
			l.warnf(node, "property %q is declared but not required", name)
		}
		return
	}
	if required.Type != ir.ArrayType {
		l.errf(required, "%s must be an array", RequiredKey)
		return
	}
	requiredNames := make([]string, 0, len(required.Values))
	for i, elt := range required.Values {
		if elt.Type != ir.StringType {
			l.errf(elt, "%s entry at [%d] must be a string", RequiredKey, i)
			continue
		}
		requiredNames = append(requiredNames, elt.String)
	}
	for _, name := range requiredNames {
		if !contains(propNames, name) {
			l.errf(required, "required property %q is not declared", name)
		}
	}
	declaredRequired := make([]string, 0, len(propNames))
	for _, name := range propNames {
		if contains(requiredNames, name) {
			declaredRequired = append(declaredRequired, name)
		} else {
			l.warnf(node, "property %q is declared but not required", name)
		}
	}
	inOrder := make([]string, 0, len(requiredNames))
	for _, name := range requiredNames {
		if contains(propNames, name) {
			inOrder = append(inOrder, name)
		}
	}
	if !slicesEqual(declaredRequired, inOrder) {
		l.warnf(required, "%s not in property declaration order", RequiredKey)
	}
}

func (l *linter) array(node *ir.Node, declared string) {
	items := ir.Get(node, ItemsKey)
	if declared == "array" && items == nil {
		l.errf(node, "array schema missing %s", ItemsKey)
		return
	}
	if items == nil {
		return
	}
	if declared != "array" {
		l.errf(items, "%s requires type %q", ItemsKey, "array")
	}
	l.schema(items, false)
}

func (l *linter) scalarConstraints(node *ir.Node, declared string) {
	if p := ir.Get(node, PatternKey); p != nil {
		if p.Type != ir.StringType {
			l.errf(p, "%s must be a string", PatternKey)
		}
		if declared != "string" {
			l.errf(p, "%s requires type %q", PatternKey, "string")
		}
	}
	for _, key := range []string{MinimumKey, MaximumKey} {
		v := ir.Get(node, key)
		if v == nil {
			continue
		}
		if v.Type != ir.NumberType {
			l.errf(v, "%s must be a number", key)
		}
		if declared != "integer" && declared != "number" {
			l.errf(v, "%s requires a numeric type", key)
		}
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
