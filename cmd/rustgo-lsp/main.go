package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mamaar/rustgo/internal/lsp"
	"github.com/mamaar/rustgo/pkg/transpile"
)

var (
	flagPort    = flag.Int("port", 0, "Port to listen on (0 for stdio)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("logfile", "", "Log file path (default: /tmp/rustgo-lsp.log)")
	flagVersion = flag.Bool("version", false, "Show version information")
)

const version = "0.1.0"

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("rustgo-lsp version %s\n", version)
		os.Exit(0)
	}

	// Stdout carries the protocol, so logs go to a file.
	logFile := *flagLogFile
	if logFile == "" {
		logFile = "/tmp/rustgo-lsp.log"
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", logFile, err)
		os.Exit(1)
	}
	defer file.Close()

	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("rustgo-lsp %s starting, pid %d, port %d (0=stdio)", version, os.Getpid(), *flagPort)

	level := slog.LevelInfo
	if *flagDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))

	engine := transpile.NewEngine(transpile.Config{}, logger)
	server := lsp.NewServer(engine)

	ctx := context.Background()
	if err := server.Start(ctx, *flagPort); err != nil {
		log.Fatalf("LSP server failed: %v", err)
	}
}
