package schema

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/schema-tools/go-schema-tools/ir"
)

// Rule is a user-supplied lint rule. Expr is an expr-lang boolean
// expression evaluated against every schema node; a true result yields a
// finding with the rule's severity. The expression sees:
//
//	path       dotted path of the node in its document
//	docID      the document id
//	keys       keys of the node, in declaration order
//	kind       node kind ("object", "string", ...)
//	schemaType the declared "type" value, or ""
//	has(k)     whether key k is present
//	get(k)     scalar value of key k, or nil
type Rule struct {
	Name     string
	Expr     string
	Severity Severity
	Message  string
}

type compiledRule struct {
	Rule
	prog *vm.Program
}

// compileRules compiles the rule set. Rules that fail to compile are
// dropped and reported as Error findings at the document root, so a bad
// rule is visible rather than silently inert.
func compileRules(docID string, rules []Rule) ([]compiledRule, []Finding) {
	var compiled []compiledRule
	var findings []Finding
	for _, r := range rules {
		prog, err := expr.Compile(r.Expr, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			findings = append(findings, Finding{
				Severity: Error,
				DocID:    docID,
				Path:     "",
				Message:  fmt.Sprintf("rule %q does not compile: %s", r.Name, err),
			})
			continue
		}
		compiled = append(compiled, compiledRule{Rule: r, prog: prog})
	}
	return compiled, findings
}

func (l *linter) rule(r compiledRule, node *ir.Node) {
	out, err := expr.Run(r.prog, ruleEnv(l.doc.ID, node))
	if err != nil {
		l.errf(node, "rule %q: %s", r.Name, err)
		return
	}
	hit, _ := out.(bool)
	if !hit {
		return
	}
	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("rule %q matched", r.Name)
	}
	l.report(r.Severity, node, "%s", msg)
}

func ruleEnv(docID string, node *ir.Node) map[string]any {
	keys := make([]string, len(node.Fields))
	for i, f := range node.Fields {
		keys[i] = f.String
	}
	schemaType := ""
	if t := ir.Get(node, TypeKey); t != nil && t.Type == ir.StringType {
		schemaType = t.String
	}
	return map[string]any{
		"path":       node.Path(),
		"docID":      docID,
		"keys":       keys,
		"kind":       node.Type.String(),
		"schemaType": schemaType,
		"has": func(k string) bool {
			return ir.Get(node, k) != nil
		},
		"get": func(k string) any {
			return scalarOf(ir.Get(node, k))
		},
	}
}

func scalarOf(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.StringType:
		return node.String
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	default:
		return nil
	}
}
