package watch

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mamaar/rustgo/pkg/transpile"
)

// Rebuilder re-transpiles Rust sources as they change. Removed sources
// have their generated counterparts deleted so the output tree tracks
// the input tree.
type Rebuilder struct {
	engine *transpile.Engine
	outDir string
	logger *slog.Logger
}

// NewRebuilder creates a Rebuilder writing output through engine. outDir
// is passed to Engine.File; empty means next to the source.
func NewRebuilder(engine *transpile.Engine, outDir string, logger *slog.Logger) *Rebuilder {
	return &Rebuilder{engine: engine, outDir: outDir, logger: logger}
}

// HandleChanges processes a batch of file-change events. Each file is
// handled independently; a transpile failure on one file does not stop
// the batch.
func (r *Rebuilder) HandleChanges(events []ChangeEvent) {
	start := time.Now()
	rebuilt, failed, removed := 0, 0, 0

	for _, ev := range events {
		switch {
		case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
			if r.handleRemove(ev.Path) {
				removed++
			}
		case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
			if r.handleRebuild(ev.Path) {
				rebuilt++
			} else {
				failed++
			}
		}
	}

	r.logger.Info("batch complete",
		"rebuilt", rebuilt,
		"failed", failed,
		"removed", removed,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}

func (r *Rebuilder) handleRebuild(path string) bool {
	// Create events can race with deletes.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}

	out, err := r.engine.File(path, r.outDir)
	if err != nil {
		r.logger.Error("rebuild failed", "file", path, "err", err)
		return false
	}
	r.logger.Debug("rebuilt", "in", path, "out", out)
	return true
}

// handleRemove deletes the generated file for a removed source, but only
// if it carries the generated-code header. Hand-written .go files with
// the same stem are left alone.
func (r *Rebuilder) handleRemove(path string) bool {
	out := r.outputFor(path)
	data, err := os.ReadFile(out)
	if err != nil {
		return false
	}
	if !strings.HasPrefix(string(data), "// Code generated by rustgo") {
		r.logger.Warn("not removing non-generated file", "file", out)
		return false
	}
	if err := os.Remove(out); err != nil {
		r.logger.Error("remove failed", "file", out, "err", err)
		return false
	}
	r.logger.Debug("removed stale output", "file", out)
	return true
}

func (r *Rebuilder) outputFor(path string) string {
	return transpile.OutputPath(path, r.outDir)
}
