//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/inikulin/dmn/internal/reconcile"
)

// setupProject creates an isolated project directory with the given files
// and directories, and points DMN_HOME at a scratch dir.
func setupProject(t *testing.T, files, dirs []string) string {
	t.Helper()

	t.Setenv("DMN_HOME", t.TempDir())
	dir := t.TempDir()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			t.Fatalf("creating dir %s: %v", d, err)
		}
	}
	for _, f := range files {
		writeFile(t, filepath.Join(dir, f), "")
	}
	return dir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the file's content or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertNoTempFiles fails if an atomic-write temp file was left in dir.
func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp-*"))
	if err != nil {
		t.Fatalf("globbing %s: %v", dir, err)
	}
	if len(matches) > 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

// gen runs a reconciliation on dir and fails the test on error.
func gen(t *testing.T, dir string, force bool, confirmer reconcile.Confirmer) string {
	t.Helper()
	status, err := reconcile.Gen(context.Background(), dir, reconcile.Options{Force: force}, confirmer)
	if err != nil {
		t.Fatalf("gen %s: %v", dir, err)
	}
	return status
}

// answer is a confirmer that records how often it was asked.
type answer struct {
	yes   bool
	calls int
}

func (a *answer) Confirm(context.Context, string) (bool, error) {
	a.calls++
	return a.yes, nil
}
