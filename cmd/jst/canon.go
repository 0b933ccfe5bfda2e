package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/schema-tools/go-schema-tools/encode"
	"github.com/schema-tools/go-schema-tools/schema"
)

func canon(cfg *CanonConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Canon.Parse(cc, args)
	if err != nil {
		cfg.Canon.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Diff && cfg.Write {
		return fmt.Errorf("%w: -diff and -w are mutually exclusive", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := canonArg(cfg, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func canonArg(cfg *CanonConfig, cc *cli.Context, arg string) error {
	doc, err := loadDocument(cfg.MainConfig, cc, arg)
	if err != nil {
		return err
	}
	canonical := schema.Canonicalize(doc)

	if cfg.Diff {
		before, err := encodeString(cfg, doc)
		if err != nil {
			return err
		}
		after, err := encodeString(cfg, canonical)
		if err != nil {
			return err
		}
		dmp := diffpatch.New()
		diffs := dmp.DiffMain(before, after, true)
		_, err = fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
		return err
	}
	if cfg.Write {
		if arg == "-" {
			return fmt.Errorf("%w: cannot write stdin in place", cli.ErrUsage)
		}
		out, err := encodeString(cfg, canonical)
		if err != nil {
			return err
		}
		return os.WriteFile(arg, []byte(out), 0644)
	}
	return encode.Encode(canonical.Root, cc.Out, cfg.encOpts(cc.Out)...)
}

// encodeString renders a document without colors so diffs and in-place
// writes see plain bytes.
func encodeString(cfg *CanonConfig, doc *schema.Document) (string, error) {
	var buf bytes.Buffer
	opts := []encode.EncodeOption{encode.EncodeWire(cfg.Wire)}
	if cfg.Indent > 0 {
		opts = append(opts, encode.EncodeIndent(cfg.Indent))
	}
	if err := encode.Encode(doc.Root, &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
