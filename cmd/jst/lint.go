package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/schema-tools/go-schema-tools/schema"
)

func lint(cfg *LintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Lint.Parse(cc, args)
	if err != nil {
		cfg.Lint.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	opts, err := lintOpts(cfg)
	if err != nil {
		return err
	}
	set, err := loadSet(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	g, _ := schema.BuildGraph(set)
	if cfg.Color {
		color.NoColor = false
	}
	failed := false
	for _, doc := range set.Documents() {
		findings := schema.Lint(doc, g, opts)
		for _, f := range findings {
			fmt.Fprintf(cc.Out, "%s\n", renderFinding(f))
		}
		if schema.HasErrors(findings) {
			failed = true
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func renderFinding(f schema.Finding) string {
	sev := f.Severity.String()
	switch f.Severity {
	case schema.Error:
		sev = color.RedString(sev)
	case schema.Warning:
		sev = color.YellowString(sev)
	}
	loc := f.DocID
	if f.Path != "" {
		loc += " ." + f.Path
	}
	return fmt.Sprintf("%s: %s: %s", sev, loc, f.Message)
}

// ruleSpec is the on-disk form of one extra lint rule, a YAML or JSON
// list of which may be supplied with -rules.
type ruleSpec struct {
	Name     string `yaml:"name"`
	Expr     string `yaml:"expr"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
}

func lintOpts(cfg *LintConfig) (*schema.LintOptions, error) {
	if cfg.Rules == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("error reading rules %s: %w", cfg.Rules, err)
	}
	var specs []ruleSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("error decoding rules %s: %w", cfg.Rules, err)
	}
	opts := &schema.LintOptions{}
	for _, s := range specs {
		sev := schema.Warning
		if s.Severity == "error" {
			sev = schema.Error
		}
		opts.Rules = append(opts.Rules, schema.Rule{
			Name:     s.Name,
			Expr:     s.Expr,
			Severity: sev,
			Message:  s.Message,
		})
	}
	return opts, nil
}
