// Package transpile wires the pipeline stages into a single engine that
// turns Rust source into formatted Go source.
package transpile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mamaar/rustgo/pkg/ast"
	"github.com/mamaar/rustgo/pkg/gen"
	"github.com/mamaar/rustgo/pkg/ir"
	"github.com/mamaar/rustgo/pkg/lexer"
	"github.com/mamaar/rustgo/pkg/parser"
	"github.com/mamaar/rustgo/pkg/sema"
	"github.com/mamaar/rustgo/pkg/token"
)

// Config controls engine behavior.
type Config struct {
	// PackageName is the Go package clause of generated files.
	// Empty means "main".
	PackageName string

	// SkipChecks bypasses semantic analysis. Syntactically valid input
	// is transpiled even if it would not type-check.
	SkipChecks bool

	// NoFormat skips goimports-style formatting of the output.
	NoFormat bool
}

// Severity of a diagnostic. The values match the LSP DiagnosticSeverity
// encoding.
type Severity int

const (
	SeverityError   Severity = 1
	SeverityWarning Severity = 2
)

// Diagnostic is a single problem found in a source file.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Col      int
}

// Engine transpiles Rust sources to Go.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// NewEngine creates an engine with the given configuration and logger.
func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Source transpiles a Rust source string. name labels the input in
// diagnostics and defaults to "<source>".
func (e *Engine) Source(name, src string) (string, error) {
	if name == "" {
		name = "<source>"
	}

	crate, err := e.parse(name, src)
	if err != nil {
		return "", err
	}

	if !e.cfg.SkipChecks {
		if errs := sema.New().Check(crate); len(errs) > 0 {
			e.logger.Debug("semantic check failed", "file", name, "errors", len(errs))
			return "", semaError(name, errs)
		}
	}

	module := ir.NewLowerer().Lower(crate, e.cfg.PackageName)
	raw := gen.New().Generate(module)
	if e.cfg.NoFormat {
		return raw, nil
	}

	formatted, err := gen.Format(name, []byte(raw))
	if err != nil {
		e.logger.Warn("formatting failed, keeping raw output", "file", name, "error", err)
		return string(formatted), nil
	}
	return string(formatted), nil
}

// File transpiles the Rust file at path and writes the Go result next to
// it, or into outDir when non-empty. It returns the output path.
func (e *Engine) File(path, outDir string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{
			Kind:    FileSystemError,
			Message: fmt.Sprintf("reading %s: %v", path, err),
			File:    path,
			Cause:   err,
		}
	}

	out, err := e.Source(path, string(src))
	if err != nil {
		return "", err
	}

	outPath := OutputPath(path, outDir)
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return "", &Error{
				Kind:    FileSystemError,
				Message: fmt.Sprintf("creating %s: %v", outDir, err),
				File:    outDir,
				Cause:   err,
			}
		}
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return "", &Error{
			Kind:    FileSystemError,
			Message: fmt.Sprintf("writing %s: %v", outPath, err),
			File:    outPath,
			Cause:   err,
		}
	}

	e.logger.Info("transpiled", "in", path, "out", outPath)
	return outPath, nil
}

// Check runs the front half of the pipeline and reports every problem
// found. A nil slice means the source is clean.
func (e *Engine) Check(name, src string) []Diagnostic {
	tokens, err := lexer.New().Lex(src)
	if err != nil {
		line, col := errorPosition(err)
		return []Diagnostic{{
			Severity: SeverityError,
			Message:  err.Error(),
			Line:     line,
			Col:      col,
		}}
	}

	var diags []Diagnostic
	crate, parseErrs := parser.New(tokens).ParseFile()
	for _, pe := range parseErrs {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s (got %q)", pe.Msg, pe.Tok.Literal),
			Line:     pe.Pos.Line,
			Col:      pe.Pos.Col,
		})
	}

	for _, se := range sema.New().Check(crate) {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Message:  se.Msg,
			Line:     se.Pos.Line,
			Col:      se.Pos.Col,
		})
	}

	e.logger.Debug("checked source", "file", name, "diagnostics", len(diags))
	return diags
}

// CheckFile runs Check against a file on disk.
func (e *Engine) CheckFile(path string) ([]Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Kind:    FileSystemError,
			Message: fmt.Sprintf("reading %s: %v", path, err),
			File:    path,
			Cause:   err,
		}
	}
	return e.Check(path, string(src)), nil
}

// Tokens lexes src and returns the token stream.
func (e *Engine) Tokens(src string) ([]token.Token, error) {
	tokens, err := lexer.New().Lex(src)
	if err != nil {
		line, col := errorPosition(err)
		return nil, &Error{Kind: LexError, Message: err.Error(), Line: line, Column: col, Cause: err}
	}
	return tokens, nil
}

// Parse lexes and parses src, failing on the first syntax error.
func (e *Engine) Parse(name, src string) (*ast.Crate, error) {
	return e.parse(name, src)
}

func (e *Engine) parse(name, src string) (*ast.Crate, error) {
	tokens, err := lexer.New().Lex(src)
	if err != nil {
		line, col := errorPosition(err)
		return nil, &Error{
			Kind:    LexError,
			Message: err.Error(),
			File:    name,
			Line:    line,
			Column:  col,
			Cause:   err,
		}
	}

	crate, parseErrs := parser.New(tokens).ParseFile()
	if len(parseErrs) > 0 {
		e.logger.Debug("parse failed", "file", name, "errors", len(parseErrs))
		first := parseErrs[0]
		msg := fmt.Sprintf("%s (got %q)", first.Msg, first.Tok.Literal)
		if len(parseErrs) > 1 {
			msg = fmt.Sprintf("%s (and %d more errors)", msg, len(parseErrs)-1)
		}
		return nil, &Error{
			Kind:    ParseError,
			Message: msg,
			File:    name,
			Line:    first.Pos.Line,
			Column:  first.Pos.Col,
			Cause:   first,
		}
	}
	return crate, nil
}

func semaError(name string, errs []sema.Error) error {
	first := errs[0]
	msg := first.Msg
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more errors)", msg, len(errs)-1)
	}
	return &Error{
		Kind:    SemanticError,
		Message: msg,
		File:    name,
		Line:    first.Pos.Line,
		Column:  first.Pos.Col,
		Cause:   first,
	}
}

// OutputPath maps input.rs to input.go, optionally relocated to outDir.
func OutputPath(path, outDir string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	out := stem + ".go"
	if outDir != "" {
		return filepath.Join(outDir, out)
	}
	return filepath.Join(filepath.Dir(path), out)
}

// errorPosition extracts the "line:col: " prefix the lexer puts on its
// errors. Missing prefixes report 1:1.
func errorPosition(err error) (int, int) {
	var line, col int
	if n, _ := fmt.Sscanf(err.Error(), "%d:%d:", &line, &col); n == 2 {
		return line, col
	}
	return 1, 1
}
