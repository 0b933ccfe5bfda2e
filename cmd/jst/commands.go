package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "jst").
		WithSynopsis("jst [opts] command [opts]").
		WithDescription("jst is a tool for linting and combining schema documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jstMain(cfg, cc, args)
		}).
		WithSubs(
			LintCommand(cfg),
			CombineCommand(cfg),
			CanonCommand(cfg),
			DiffCommand(cfg))
}

func LintCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LintConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Lint, "lint").
		WithAliases("l").
		WithSynopsis("lint [opts] [files]").
		WithDescription("check schema documents against the supported subset").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return lint(cfg, cc, args)
		})
}

func CombineCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CombineConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Combine, "combine").
		WithAliases("c", "co").
		WithSynopsis("combine [-root file] [files]").
		WithDescription("merge a document's reference closure into one self-contained schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return combine(cfg, cc, args)
		})
}

func CanonCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CanonConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Canon, "canon").
		WithSynopsis("canon [-diff|-w] [files]").
		WithDescription("rewrite schema documents into canonical key order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return canon(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("print the merge patch turning schema document a into b").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
