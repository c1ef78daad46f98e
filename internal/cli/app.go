package cli

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/mamaar/rustgo/pkg/transpile"
)

// App represents the rustgo application
type App struct {
	flags *Flags
}

// NewApp creates a new application instance
func NewApp() *App {
	return &App{}
}

// Initialize sets up the application with flags and configuration
func (app *App) Initialize() {
	log.SetFlags(0) // Remove timestamp from log output
	ParseFlags(Usage)
	app.flags = GlobalFlags
}

// Run executes the application logic with the provided runner
func (app *App) Run(runner *Runner) {
	// Handle version flag
	if *app.flags.Version {
		ShowVersion()
		return
	}

	// Get command arguments
	args := flag.Args()
	if len(args) < 1 {
		Usage()
		os.Exit(1)
	}

	// Execute the command
	runner.Execute(args[0], args[1:])
}

// NewLogger builds the application logger. Verbose mode lowers the level
// to debug; otherwise only warnings and errors reach stderr so command
// output stays clean.
func NewLogger() *slog.Logger {
	level := slog.LevelWarn
	if *GlobalFlags.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// CreateEngineWithFlags creates a transpile engine with configuration based on command line flags
func CreateEngineWithFlags() *transpile.Engine {
	config := transpile.Config{
		PackageName: *GlobalFlags.Package,
		SkipChecks:  *GlobalFlags.SkipChecks,
		NoFormat:    *GlobalFlags.NoFormat,
	}
	return transpile.NewEngine(config, NewLogger())
}
