package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/schema-tools/go-schema-tools/encode"
)

type MainConfig struct {
	Color  bool   `cli:"name=color desc='encode with color'"`
	Wire   bool   `cli:"name=wire desc='output in compact format'"`
	Indent int    `cli:"name=indent desc='indent width for output'"`
	ID     string `cli:"name=id desc='document id for stdin input'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeWire(cfg.Wire),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type LintConfig struct {
	*MainConfig
	Rules string `cli:"name=rules desc='file with extra lint rules'"`

	Lint *cli.Command
}

type CombineConfig struct {
	*MainConfig
	Root string `cli:"name=root desc='root document file (default first argument)'"`

	Combine *cli.Command
}

type CanonConfig struct {
	*MainConfig
	Diff  bool `cli:"name=diff desc='print a diff instead of the result'"`
	Write bool `cli:"name=w desc='rewrite files in place'"`

	Canon *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
