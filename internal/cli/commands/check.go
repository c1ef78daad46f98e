package commands

import (
	"fmt"
	"os"

	"github.com/mamaar/rustgo/internal/cli"
	"github.com/mamaar/rustgo/pkg/transpile"
)

// checkResult is the JSON shape of one diagnostic.
type checkResult struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// CheckCommand reports problems in Rust source files without generating code
func CheckCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: check requires at least 1 argument: <file.rs>...\n")
		fmt.Fprintf(os.Stderr, "Usage: rustgo [options] check main.rs [more.rs...]\n")
		os.Exit(1)
	}

	engine := cli.CreateEngineWithFlags()
	var results []checkResult

	for _, path := range args {
		diags, err := engine.CheckFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, d := range diags {
			results = append(results, checkResult{
				File:     path,
				Line:     d.Line,
				Col:      d.Col,
				Severity: severityName(d.Severity),
				Message:  d.Message,
			})
		}
	}

	if *cli.GlobalFlags.Json {
		if results == nil {
			results = []checkResult{}
		}
		OutputJSON(results)
	} else {
		for _, res := range results {
			fmt.Printf("%s:%d:%d: %s: %s\n", res.File, res.Line, res.Col, res.Severity, res.Message)
		}
		if len(results) == 0 {
			fmt.Printf("%d file(s) checked, no problems found\n", len(args))
		}
	}

	if len(results) > 0 {
		os.Exit(1)
	}
}

func severityName(s transpile.Severity) string {
	switch s {
	case transpile.SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}
