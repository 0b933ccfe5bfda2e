package main

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/schema-tools/go-schema-tools/encode"
	"github.com/schema-tools/go-schema-tools/ir"
	"github.com/schema-tools/go-schema-tools/parse"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	a, err := loadDocument(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	b, err := loadDocument(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	if ir.Equal(a.Root, b.Root) {
		_, err := fmt.Fprintln(cc.Out, "{}")
		return err
	}
	aJSON, err := wireJSON(a.Root)
	if err != nil {
		return err
	}
	bJSON, err := wireJSON(b.Root)
	if err != nil {
		return err
	}
	patch, err := jsonpatch.CreateMergePatch(aJSON, bJSON)
	if err != nil {
		return fmt.Errorf("error diffing %s and %s: %w", args[0], args[1], err)
	}
	node, err := parse.Parse(patch)
	if err != nil {
		return err
	}
	return encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...)
}

func wireJSON(node *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
