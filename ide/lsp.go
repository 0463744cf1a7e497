// Package ide provides the language server for interface files with
// embedded specification annotations. Every document change re-runs
// the weaving pass and publishes its diagnostics.
package ide

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/ml/parser"
	"github.com/dhamidi/vow/weave"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "vow"

var log = commonlog.GetLogger("vow.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[string]string
}

func NewServer(version string) *Server {
	s := &Server{
		version:   version,
		documents: make(map[string]string),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, string(params.TextDocument.URI), params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, string(params.TextDocument.URI), textChange.Text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, string(params.TextDocument.URI), *params.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, string(params.TextDocument.URI))
	s.mu.Unlock()
	s.publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (s *Server) update(ctx *glsp.Context, uri string, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()
	s.check(ctx, uri, text)
}

// check runs the weaving pass over one document and publishes the
// resulting diagnostics.
func (s *Server) check(ctx *glsp.Context, uri string, text string) {
	file := uriToPath(uri)
	diagnostics := []protocol.Diagnostic{}

	items, err := ml.InterfaceFromSource([]byte(text), parser.WithFile(file))
	if err != nil {
		if perr, ok := err.(*ml.ParseError); ok {
			diagnostics = append(diagnostics, diagnostic(perr.Span, perr.Msg, protocol.DiagnosticSeverityError))
		} else {
			log.Errorf("parse %s: %s", file, err.Error())
		}
		s.publish(ctx, protocol.DocumentUri(uri), diagnostics)
		return
	}

	reporter := &weave.CollectReporter{}
	if _, err := weave.Weave(items, reporter); err != nil {
		if werr, ok := err.(*weave.Error); ok {
			diagnostics = append(diagnostics, diagnostic(werr.Span, werr.Error(), protocol.DiagnosticSeverityError))
		} else {
			log.Errorf("weave %s: %s", file, err.Error())
		}
	}
	for _, warning := range reporter.Warnings {
		diagnostics = append(diagnostics, diagnostic(warning.Span, warning.Msg, protocol.DiagnosticSeverityWarning))
	}

	s.publish(ctx, protocol.DocumentUri(uri), diagnostics)
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func diagnostic(span parser.Span, msg string, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	source := lsName
	return protocol.Diagnostic{
		Range:    spanToRange(span),
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

// spanToRange converts 1-based file coordinates to 0-based LSP
// positions.
func spanToRange(span parser.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(max(span.Start.Line-1, 0)),
			Character: uint32(max(span.Start.Column-1, 0)),
		},
		End: protocol.Position{
			Line:      uint32(max(span.End.Line-1, 0)),
			Character: uint32(max(span.End.Column-1, 0)),
		},
	}
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if parsed, err := url.Parse(uri); err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
