package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mamaar/rustgo/internal/cli"
	"github.com/mamaar/rustgo/pkg/watch"
)

// WatchCommand watches a directory and re-transpiles .rs files as they change
func WatchCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: watch requires exactly 1 argument: <dir>\n")
		fmt.Fprintf(os.Stderr, "Usage: rustgo [options] watch src/\n")
		os.Exit(1)
	}

	root := args[0]
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", root)
		os.Exit(1)
	}

	logger := cli.NewLogger()
	debounce := time.Duration(*cli.GlobalFlags.Debounce) * time.Millisecond

	watcher, err := watch.NewWatcher(root, debounce, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = watcher.Close() }()

	engine := cli.CreateEngineWithFlags()
	rebuilder := watch.NewRebuilder(engine, *cli.GlobalFlags.OutDir, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := make(chan []watch.ChangeEvent, 16)
	go func() {
		for batch := range out {
			rebuilder.HandleChanges(batch)
		}
	}()

	fmt.Printf("Watching %s for .rs changes (Ctrl-C to stop)\n", root)
	if err := watcher.Run(ctx, out); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
