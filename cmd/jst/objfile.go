package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/schema-tools/go-schema-tools/parse"
	"github.com/schema-tools/go-schema-tools/schema"
)

func readArg(cc *cli.Context, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(cc.In)
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// docIDFor derives a document ID from a file path: the extension goes,
// separators become '/', and the result is rooted. "schemas/point.json"
// identifies the document "/schemas/point".
func docIDFor(path string) string {
	if path == "-" {
		return "/stdin"
	}
	p := filepath.ToSlash(filepath.Clean(path))
	p = strings.TrimSuffix(p, filepath.Ext(p))
	p = strings.TrimPrefix(p, "./")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// docID derives the document ID for an argument, honoring the -id
// override for stdin input.
func (cfg *MainConfig) docID(arg string) string {
	if arg == "-" && cfg.ID != "" {
		return cfg.ID
	}
	return docIDFor(arg)
}

func loadDocument(cfg *MainConfig, cc *cli.Context, arg string) (*schema.Document, error) {
	data, err := readArg(cc, arg)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	node, err := parse.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	doc, err := schema.NewDocument(cfg.docID(arg), node)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", arg, err)
	}
	return doc, nil
}

// loadSet loads every argument into one document set. With no arguments
// it reads a single document from stdin.
func loadSet(cfg *MainConfig, cc *cli.Context, args []string) (*schema.DocumentSet, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	set := schema.NewDocumentSet()
	for _, arg := range args {
		doc, err := loadDocument(cfg, cc, arg)
		if err != nil {
			return nil, err
		}
		if err := set.Add(doc); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", arg, err)
		}
	}
	return set, nil
}
