package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/schema-tools/go-schema-tools/encode"
	"github.com/schema-tools/go-schema-tools/schema"
)

func combine(cfg *CombineConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Combine.Parse(cc, args)
	if err != nil {
		cfg.Combine.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	rootArg := cfg.Root
	if rootArg == "" {
		if len(args) == 0 {
			return fmt.Errorf("%w: combine requires a root document", cli.ErrUsage)
		}
		rootArg = args[0]
	} else if !contains(args, rootArg) {
		args = append([]string{rootArg}, args...)
	}
	set, err := loadSet(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	root, ok := set.Get(cfg.docID(rootArg))
	if !ok {
		return fmt.Errorf("%w: root %s not among inputs", cli.ErrUsage, rootArg)
	}
	g, _ := schema.BuildGraph(set)
	combined, err := schema.Combine(root, set, g)
	if err != nil {
		return err
	}
	return encode.Encode(combined.Root, cc.Out, cfg.encOpts(cc.Out)...)
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
