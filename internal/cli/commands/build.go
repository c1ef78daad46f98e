package commands

import (
	"fmt"
	"os"

	"github.com/mamaar/rustgo/internal/cli"
)

// buildResult is the JSON shape of one transpiled file.
type buildResult struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BuildCommand transpiles one or more Rust source files to Go
func BuildCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: build requires at least 1 argument: <file.rs>...\n")
		fmt.Fprintf(os.Stderr, "Usage: rustgo [options] build main.rs [more.rs...]\n")
		os.Exit(1)
	}

	engine := cli.CreateEngineWithFlags()
	results := make([]buildResult, 0, len(args))
	failed := false

	for _, path := range args {
		if *cli.GlobalFlags.DryRun {
			src, err := os.ReadFile(path)
			if err != nil {
				results = append(results, buildResult{Input: path, Error: err.Error()})
				failed = true
				continue
			}
			out, err := engine.Source(path, string(src))
			if err != nil {
				results = append(results, buildResult{Input: path, Error: err.Error()})
				failed = true
				continue
			}
			if !*cli.GlobalFlags.Json {
				fmt.Print(out)
			}
			results = append(results, buildResult{Input: path, Output: out})
			continue
		}

		outPath, err := engine.File(path, *cli.GlobalFlags.OutDir)
		if err != nil {
			results = append(results, buildResult{Input: path, Error: err.Error()})
			failed = true
			continue
		}
		results = append(results, buildResult{Input: path, Output: outPath})
	}

	if *cli.GlobalFlags.Json {
		OutputJSON(results)
	} else {
		for _, res := range results {
			if res.Error != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", res.Error)
			} else if !*cli.GlobalFlags.DryRun {
				fmt.Printf("%s -> %s\n", res.Input, res.Output)
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}
