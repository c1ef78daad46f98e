package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mamaar/rustgo/pkg/transpile"
)

// Server is a diagnostics-only LSP server for Rust sources handled by the
// transpiler. It tracks open documents and pushes diagnostics on open,
// change, and save.
type Server struct {
	mu           sync.RWMutex
	engine       *transpile.Engine
	rootPath     string
	documents    map[string]string
	initialized  bool
	capabilities ServerCapabilities
}

// NewServer creates a new LSP server instance
func NewServer(engine *transpile.Engine) *Server {
	return &Server{
		engine:    engine,
		documents: make(map[string]string),
		capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: true,
				},
			},
		},
	}
}

// Start starts the LSP server on stdio or TCP
func (s *Server) Start(ctx context.Context, port int) error {
	if port == 0 {
		return s.ServeStdio(ctx)
	}
	return s.ServeTCP(ctx, port)
}

// ServeStdio serves the LSP over stdio
func (s *Server) ServeStdio(ctx context.Context) error {
	log.Printf("Starting LSP server on stdio")
	return s.serve(ctx, os.Stdin, os.Stdout)
}

// ServeTCP serves the LSP over TCP
func (s *Server) ServeTCP(ctx context.Context, port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	defer listener.Close()

	log.Printf("Starting LSP server on port %d", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("Failed to accept connection: %v", err)
			continue
		}

		go func() {
			defer conn.Close()
			if err := s.serve(ctx, conn, conn); err != nil {
				log.Printf("Error serving connection: %v", err)
			}
		}()
	}
}

// serve handles the LSP protocol over the given reader/writer
func (s *Server) serve(ctx context.Context, reader io.Reader, writer io.Writer) error {
	connection := NewConnection(reader, writer)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		message, err := connection.ReadMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		response, err := s.handleMessage(connection, message)
		if err != nil {
			log.Printf("Error handling message %s: %v", message.Method, err)
			continue
		}

		if response != nil {
			if err := connection.WriteMessage(response); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

// handleMessage processes an LSP message and returns a response, or nil
// for notifications
func (s *Server) handleMessage(conn *Connection, message *Message) (*Message, error) {
	switch message.Method {
	case "initialize":
		return s.handleInitialize(message)
	case "initialized":
		go func() {
			if err := s.CheckWorkspace(conn); err != nil {
				log.Printf("Workspace scan failed: %v", err)
			}
		}()
		return nil, nil
	case "shutdown":
		return s.handleShutdown(message)
	case "exit":
		os.Exit(0)
		return nil, nil
	case "textDocument/didOpen":
		return s.handleDidOpen(conn, message)
	case "textDocument/didChange":
		return s.handleDidChange(conn, message)
	case "textDocument/didSave":
		return s.handleDidSave(conn, message)
	case "textDocument/didClose":
		return s.handleDidClose(conn, message)
	default:
		log.Printf("Unhandled method: %s", message.Method)
		return nil, nil
	}
}

func (s *Server) handleInitialize(message *Message) (*Message, error) {
	var params InitializeParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return s.errorResponse(message.ID, -32602, "Invalid params", err)
	}

	s.mu.Lock()
	s.rootPath = uriToPath(params.RootURI)
	if s.rootPath == "" {
		s.rootPath = params.RootPath
	}
	s.initialized = true
	s.mu.Unlock()

	log.Printf("Initialized with root path: %s", s.rootPath)

	result := InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &ServerInfo{
			Name:    "rustgo-lsp",
			Version: "0.1.0",
		},
	}
	return s.successResponse(message.ID, result)
}

func (s *Server) handleShutdown(message *Message) (*Message, error) {
	s.mu.Lock()
	s.initialized = false
	s.documents = make(map[string]string)
	s.mu.Unlock()

	return s.successResponse(message.ID, nil)
}

func (s *Server) handleDidOpen(conn *Connection, message *Message) (*Message, error) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}

	uri := params.TextDocument.URI
	s.setDocument(uri, params.TextDocument.Text)
	s.publishDiagnostics(conn, uri, params.TextDocument.Text)
	return nil, nil
}

func (s *Server) handleDidChange(conn *Connection, message *Message) (*Message, error) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}
	if len(params.ContentChanges) == 0 {
		return nil, nil
	}

	// Full sync: the last change event carries the complete text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	uri := params.TextDocument.URI
	s.setDocument(uri, text)
	s.publishDiagnostics(conn, uri, text)
	return nil, nil
}

func (s *Server) handleDidSave(conn *Connection, message *Message) (*Message, error) {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}

	uri := params.TextDocument.URI
	text := ""
	if params.Text != nil {
		text = *params.Text
		s.setDocument(uri, text)
	} else {
		text = s.getDocument(uri)
	}
	if text != "" {
		s.publishDiagnostics(conn, uri, text)
	}
	return nil, nil
}

func (s *Server) handleDidClose(conn *Connection, message *Message) (*Message, error) {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}

	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()

	// Clear diagnostics for the closed document.
	return nil, s.notifyDiagnostics(conn, uri, []Diagnostic{})
}

// publishDiagnostics checks text and pushes the results for uri.
func (s *Server) publishDiagnostics(conn *Connection, uri, text string) {
	diags := s.engine.Check(uriToPath(uri), text)

	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, Diagnostic{
			Range:    diagnosticRange(d, text),
			Severity: int(d.Severity),
			Source:   "rustgo",
			Message:  d.Message,
		})
	}

	if err := s.notifyDiagnostics(conn, uri, out); err != nil {
		log.Printf("Failed to publish diagnostics for %s: %v", uri, err)
	}
}

func (s *Server) notifyDiagnostics(conn *Connection, uri string, diags []Diagnostic) error {
	params, err := json.Marshal(PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
	if err != nil {
		return err
	}
	return conn.WriteMessage(&Message{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  params,
	})
}

// diagnosticRange converts a 1-based engine position into a 0-based LSP
// range spanning to the end of the offending line.
func diagnosticRange(d transpile.Diagnostic, text string) Range {
	line := d.Line - 1
	if line < 0 {
		line = 0
	}
	col := d.Col - 1
	if col < 0 {
		col = 0
	}

	end := col + 1
	lines := strings.Split(text, "\n")
	if line < len(lines) {
		if n := len([]rune(lines[line])); n > end {
			end = n
		}
	}

	return Range{
		Start: Position{Line: line, Character: col},
		End:   Position{Line: line, Character: end},
	}
}

func (s *Server) setDocument(uri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()
}

func (s *Server) getDocument(uri string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[uri]
}

// CheckWorkspace runs diagnostics over every .rs file under the root path.
// Used at startup so problems surface before any document is opened.
func (s *Server) CheckWorkspace(conn *Connection) error {
	s.mu.RLock()
	root := s.rootPath
	s.mu.RUnlock()
	if root == "" {
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || name == "target" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".rs") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping unreadable file %s: %v", path, err)
			return nil
		}
		s.publishDiagnostics(conn, pathToURI(path), string(data))
		return nil
	})
}

func (s *Server) successResponse(id interface{}, result interface{}) (*Message, error) {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}, nil
}

func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) (*Message, error) {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ResponseError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}, nil
}

// uriToPath strips the file:// scheme
func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return uri[7:]
	}
	return uri
}

// pathToURI adds the file:// scheme to an absolute path
func pathToURI(path string) string {
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return "file://" + path
}
