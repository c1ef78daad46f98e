package cli

import "flag"

// Flags holds all command line flags
type Flags struct {
	Version    *bool
	OutDir     *string
	Package    *string
	Json       *bool
	Verbose    *bool
	DryRun     *bool
	NoFormat   *bool
	SkipChecks *bool
	Debounce   *int
}

// GlobalFlags holds the parsed command line flags
var GlobalFlags *Flags

// InitFlags initializes all command line flags
func InitFlags() *Flags {
	return &Flags{
		Version:    flag.Bool("version", false, "Show version information"),
		OutDir:     flag.String("out", "", "Directory for generated Go files (defaults to next to the source)"),
		Package:    flag.String("pkg", "main", "Package clause for generated Go files"),
		Json:       flag.Bool("json", false, "Output results in JSON format"),
		Verbose:    flag.Bool("verbose", false, "Enable verbose output"),
		DryRun:     flag.Bool("dry-run", false, "Print generated code instead of writing files"),
		NoFormat:   flag.Bool("no-format", false, "Skip goimports-style formatting of generated code"),
		SkipChecks: flag.Bool("skip-checks", false, "Skip semantic checks before code generation"),
		Debounce:   flag.Int("debounce", 300, "Watch mode debounce interval in milliseconds"),
	}
}

// ParseFlags parses command line flags with custom usage
func ParseFlags(usage func()) {
	if GlobalFlags == nil {
		GlobalFlags = InitFlags()
	}
	flag.Usage = usage
	flag.Parse()
}
