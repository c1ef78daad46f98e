package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/rustgo/pkg/ast"
	"github.com/mamaar/rustgo/pkg/transpile"
)

func main() {
	var (
		workspaceFlag = flag.String("workspace", "", "Root directory of Rust sources (defaults to current directory)")
		portFlag      = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag     = flag.Bool("debug", false, "Enable debug logging")
		versionFlag   = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("rustgo-mcp v0.1.0")
		fmt.Println("Model Context Protocol server for Rust to Go transpilation")
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Determine workspace directory
	workspace := *workspaceFlag
	if workspace == "" {
		var err error
		workspace, err = os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get current directory: %v", err)
		}
	}

	workspace, err := filepath.Abs(workspace)
	if err != nil {
		log.Fatalf("Failed to resolve workspace path: %v", err)
	}
	if info, err := os.Stat(workspace); err != nil || !info.IsDir() {
		log.Fatalf("Workspace must be an existing directory: %s", workspace)
	}

	log.SetFlags(0)
	log.Printf("Starting MCP server for workspace: %s", workspace)

	mcpServer := server.NewMCPServer(
		"rustgo-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	engine := transpile.NewEngine(transpile.Config{}, logger)

	// Add tools
	addTranspileSourceTool(mcpServer, engine)
	addTranspileFileTool(mcpServer, engine, workspace)
	addCheckSourceTool(mcpServer, engine)
	addDumpAstTool(mcpServer, engine)
	addDumpTokensTool(mcpServer, engine)

	// Add resources
	addSourceListResource(mcpServer, workspace)
	addWorkspaceStatsResource(mcpServer, workspace)

	// Add prompts
	addPortingPrompt(mcpServer)

	// Start server
	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	} else {
		httpServer := server.NewStreamableHTTPServer(mcpServer)
		log.Printf("Starting HTTP server on port %d", *portFlag)
		if err := httpServer.Start(fmt.Sprintf(":%d", *portFlag)); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}
}

// addTranspileSourceTool adds the transpile_source tool to the MCP server
func addTranspileSourceTool(s *server.MCPServer, engine *transpile.Engine) {
	tool := mcp.NewTool("transpile_source",
		mcp.WithDescription("Transpile a Rust source string to Go and return the generated code"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Rust source code to transpile"),
		),
		mcp.WithString("package_name",
			mcp.Description("Package clause for the generated Go code (default: main)"),
		),
		mcp.WithBoolean("skip_checks",
			mcp.Description("Skip semantic checks before code generation"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		source, ok := args["source"].(string)
		if !ok {
			return mcp.NewToolResultError("source is required"), nil
		}

		pkgName, _ := args["package_name"].(string)
		skipChecks, _ := args["skip_checks"].(bool)

		e := engine
		if pkgName != "" || skipChecks {
			e = transpile.NewEngine(transpile.Config{
				PackageName: pkgName,
				SkipChecks:  skipChecks,
			}, slog.Default())
		}

		out, err := e.Source("", source)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error transpiling source: %v", err)), nil
		}

		return mcp.NewToolResultText(out), nil
	})
}

// addTranspileFileTool adds the transpile_file tool to the MCP server
func addTranspileFileTool(s *server.MCPServer, engine *transpile.Engine, workspace string) {
	tool := mcp.NewTool("transpile_file",
		mcp.WithDescription("Transpile a Rust file in the workspace and write the generated Go file next to it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .rs file, relative to the workspace root"),
		),
		mcp.WithString("out_dir",
			mcp.Description("Directory for the generated file (optional, relative to the workspace root)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path, ok := args["path"].(string)
		if !ok {
			return mcp.NewToolResultError("path is required"), nil
		}
		outDir, _ := args["out_dir"].(string)

		absPath, err := workspacePath(workspace, path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		absOut := ""
		if outDir != "" {
			if absOut, err = workspacePath(workspace, outDir); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		outPath, err := engine.File(absPath, absOut)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error transpiling file: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Transpiled %s to %s", path, outPath)), nil
	})
}

// addCheckSourceTool adds the check_source tool to the MCP server
func addCheckSourceTool(s *server.MCPServer, engine *transpile.Engine) {
	tool := mcp.NewTool("check_source",
		mcp.WithDescription("Check a Rust source string and return all lexical, syntax, and semantic diagnostics"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Rust source code to check"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		source, ok := args["source"].(string)
		if !ok {
			return mcp.NewToolResultError("source is required"), nil
		}

		diags := engine.Check("", source)
		if len(diags) == 0 {
			return mcp.NewToolResultText("No problems found."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d problem(s):\n", len(diags))
		for _, d := range diags {
			fmt.Fprintf(&sb, "%d:%d: %s\n", d.Line, d.Col, d.Message)
		}
		return mcp.NewToolResultText(sb.String()), nil
	})
}

// addDumpAstTool adds the dump_ast tool to the MCP server
func addDumpAstTool(s *server.MCPServer, engine *transpile.Engine) {
	tool := mcp.NewTool("dump_ast",
		mcp.WithDescription("Parse a Rust source string and return its syntax tree as an indented dump"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Rust source code to parse"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		source, ok := args["source"].(string)
		if !ok {
			return mcp.NewToolResultError("source is required"), nil
		}

		crate, err := engine.Parse("", source)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error parsing source: %v", err)), nil
		}

		return mcp.NewToolResultText(ast.Dump(crate)), nil
	})
}

// addDumpTokensTool adds the dump_tokens tool to the MCP server
func addDumpTokensTool(s *server.MCPServer, engine *transpile.Engine) {
	tool := mcp.NewTool("dump_tokens",
		mcp.WithDescription("Lex a Rust source string and return its token stream, one token per line"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Rust source code to lex"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		source, ok := args["source"].(string)
		if !ok {
			return mcp.NewToolResultError("source is required"), nil
		}

		tokens, err := engine.Tokens(source)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error lexing source: %v", err)), nil
		}

		var sb strings.Builder
		for _, tok := range tokens {
			fmt.Fprintf(&sb, "%d:%d\t%s\n", tok.Line, tok.Col, tok)
		}
		return mcp.NewToolResultText(sb.String()), nil
	})
}

// addSourceListResource adds the sources resource to the MCP server
func addSourceListResource(s *server.MCPServer, workspace string) {
	sourcesResource := mcp.NewResource("workspace://sources",
		"Rust Source List",
		mcp.WithResourceDescription("List of all .rs files in the workspace"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(sourcesResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sources := make([]map[string]interface{}, 0)

		err := filepath.WalkDir(workspace, func(path string, d fs.DirEntry, err error) error {
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

			relPath, err := filepath.Rel(workspace, path)
			if err != nil {
				relPath = path
			}
			info, err := d.Info()
			size := int64(0)
			if err == nil {
				size = info.Size()
			}

			sources = append(sources, map[string]interface{}{
				"path":       relPath,
				"full_path":  path,
				"size_bytes": size,
				"generated":  generatedOutputExists(path),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(sources, "", "  ")
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "workspace://sources",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

// addWorkspaceStatsResource adds the workspace statistics resource to the MCP server
func addWorkspaceStatsResource(s *server.MCPServer, workspace string) {
	statsResource := mcp.NewResource("workspace://stats",
		"Workspace Statistics",
		mcp.WithResourceDescription("Statistics about the workspace"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(statsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sourceCount := 0
		generatedCount := 0

		err := filepath.WalkDir(workspace, func(path string, d fs.DirEntry, err error) error {
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
			if strings.HasSuffix(path, ".rs") {
				sourceCount++
				if generatedOutputExists(path) {
					generatedCount++
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		stats := map[string]interface{}{
			"workspace_path":  workspace,
			"source_count":    sourceCount,
			"generated_count": generatedCount,
			"stale_count":     sourceCount - generatedCount,
		}

		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "workspace://stats",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

// addPortingPrompt adds the porting planning prompt to the MCP server
func addPortingPrompt(s *server.MCPServer) {
	portPrompt := mcp.NewPrompt("port_planning",
		mcp.WithPromptDescription("Generate a plan for porting Rust code to Go"),
		mcp.WithArgument("target",
			mcp.ArgumentDescription("File, module, or crate to port"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("context",
			mcp.ArgumentDescription("Additional context about the porting goals"),
		),
	)

	s.AddPrompt(portPrompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := request.Params.Arguments

		target, ok := args["target"]
		if !ok {
			return nil, fmt.Errorf("target is required")
		}

		context := args["context"]

		prompt := fmt.Sprintf(`You are an expert in porting Rust code to Go. Help plan the port of the following target:

Target: %s`, target)

		if context != "" {
			prompt += fmt.Sprintf(`
Context: %s`, context)
		}

		prompt += `

Please provide:
1. A step-by-step porting plan
2. Rust constructs in the target that have no direct Go equivalent
3. Suggested Go idioms for ownership, error handling, and traits
4. Validation steps to confirm behavioral equivalence

Consider:
- Rust's Result/Option versus Go's explicit error returns
- Trait bounds versus Go interfaces
- Pattern matching versus type switches
- Cargo workspace layout versus Go module layout`

		return &mcp.GetPromptResult{
			Description: "Porting planning guidance",
			Messages: []mcp.PromptMessage{
				{
					Role: mcp.RoleUser,
					Content: mcp.TextContent{
						Type: "text",
						Text: prompt,
					},
				},
			},
		}, nil
	})
}

// workspacePath resolves rel against the workspace root and rejects paths
// that escape it.
func workspacePath(workspace, rel string) (string, error) {
	abs := rel
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(workspace, rel)
	}
	abs = filepath.Clean(abs)
	if abs != workspace && !strings.HasPrefix(abs, workspace+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes workspace: %s", rel)
	}
	return abs, nil
}

// generatedOutputExists reports whether path's .go counterpart exists and
// carries the generated-code header.
func generatedOutputExists(path string) bool {
	out := transpile.OutputPath(path, "")
	data, err := os.ReadFile(out)
	if err != nil {
		return false
	}
	return strings.HasPrefix(string(data), "// Code generated by rustgo")
}
