package main

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/schema-tools/go-schema-tools/debug"
	"github.com/schema-tools/go-schema-tools/parse"
	"github.com/schema-tools/go-schema-tools/schema"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri      string
	content  string
	version  int32
	doc      *schema.Document
	parseErr error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d := &document{
		uri:     uri,
		content: content,
		version: version,
	}
	node, err := parse.Parse([]byte(content))
	if err == nil {
		d.doc, err = schema.NewDocument(docIDForURI(uri), node)
	}
	d.parseErr = err
	ds.docs[uri] = d
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// docIDForURI maps an editor URI onto a document ID the reference
// grammar accepts: scheme and extension go, separators become '/'.
func docIDForURI(uri string) string {
	p := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		p = u.Path
	}
	p = filepath.ToSlash(p)
	p = strings.TrimSuffix(p, filepath.Ext(p))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.lintDocument(doc)
	if debug.LSP() {
		debug.Logf("lsp: %s (%s): %d diagnostics\n", uri, docIDForURI(uri), len(diagnostics))
	}

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) lintDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	if doc.parseErr != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 0},
			},
			Severity: protocol.DiagnosticSeverityError,
			Message:  doc.parseErr.Error(),
			Source:   lsName,
		})
		return diagnostics
	}

	set := schema.NewDocumentSet()
	if err := set.Add(doc.doc); err != nil {
		return diagnostics
	}
	g, _ := schema.BuildGraph(set)
	for _, f := range schema.Lint(doc.doc, g, nil) {
		sev := protocol.DiagnosticSeverityWarning
		if f.Severity == schema.Error {
			sev = protocol.DiagnosticSeverityError
		}
		msg := f.Message
		if f.Path != "" {
			msg = f.Path + ": " + msg
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 0},
			},
			Severity: sev,
			Message:  msg,
			Source:   lsName,
		})
	}
	return diagnostics
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	// full sync: the last change carries the whole document
	content := doc.content
	for _, change := range params.ContentChanges {
		content = change.Text
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
