package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/mamaar/rustgo/pkg/transpile"
)

func newTestRebuilder(outDir string) *Rebuilder {
	engine := transpile.NewEngine(transpile.Config{}, testLogger())
	return NewRebuilder(engine, outDir, testLogger())
}

func TestRebuilder_WriteEventTranspiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lib.rs")
	writeRustFile(t, dir, "lib.rs", "fn double(n: i32) -> i32 {\n    n * 2\n}\n")

	newTestRebuilder("").HandleChanges([]ChangeEvent{{Path: src, Op: fsnotify.Write}})

	out, err := os.ReadFile(filepath.Join(dir, "lib.go"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(out), "func double(n int) int {") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRebuilder_BadSourceDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	writeRustFile(t, dir, "bad.rs", "fn broken( {")
	writeRustFile(t, dir, "good.rs", "fn fine() {}\n")

	newTestRebuilder("").HandleChanges([]ChangeEvent{
		{Path: filepath.Join(dir, "bad.rs"), Op: fsnotify.Write},
		{Path: filepath.Join(dir, "good.rs"), Op: fsnotify.Write},
	})

	if _, err := os.Stat(filepath.Join(dir, "bad.go")); !os.IsNotExist(err) {
		t.Error("broken source should not produce output")
	}
	if _, err := os.Stat(filepath.Join(dir, "good.go")); err != nil {
		t.Errorf("good source not rebuilt: %v", err)
	}
}

func TestRebuilder_RemoveDeletesGeneratedOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gone.rs")
	writeRustFile(t, dir, "gone.rs", "fn gone() {}\n")

	r := newTestRebuilder("")
	r.HandleChanges([]ChangeEvent{{Path: src, Op: fsnotify.Write}})
	if _, err := os.Stat(filepath.Join(dir, "gone.go")); err != nil {
		t.Fatalf("setup failed, output missing: %v", err)
	}

	_ = os.Remove(src)
	r.HandleChanges([]ChangeEvent{{Path: src, Op: fsnotify.Remove}})

	if _, err := os.Stat(filepath.Join(dir, "gone.go")); !os.IsNotExist(err) {
		t.Error("stale output not removed")
	}
}

func TestRebuilder_RemoveKeepsHandWrittenFiles(t *testing.T) {
	dir := t.TempDir()
	handWritten := filepath.Join(dir, "precious.go")
	if err := os.WriteFile(handWritten, []byte("package precious\n"), 0644); err != nil {
		t.Fatal(err)
	}

	newTestRebuilder("").HandleChanges([]ChangeEvent{
		{Path: filepath.Join(dir, "precious.rs"), Op: fsnotify.Remove},
	})

	if _, err := os.Stat(handWritten); err != nil {
		t.Errorf("hand-written file was removed: %v", err)
	}
}

func TestRebuilder_OutDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "gen")
	src := filepath.Join(dir, "lib.rs")
	writeRustFile(t, dir, "lib.rs", "fn id(n: i32) -> i32 {\n    n\n}\n")

	newTestRebuilder(outDir).HandleChanges([]ChangeEvent{{Path: src, Op: fsnotify.Write}})

	if _, err := os.Stat(filepath.Join(outDir, "lib.go")); err != nil {
		t.Errorf("output not in outDir: %v", err)
	}
}
