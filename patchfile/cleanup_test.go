package patchfile

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "parent")
	child := filepath.Join(parent, "child.txt")
	writeFile(t, child, "x")

	var c Cleanup
	c.Defer(child)
	c.Defer(parent)
	c.Defer(child)

	if got := c.Pending(); len(got) != 2 || got[0] != child || got[1] != parent {
		t.Fatalf("Pending() = %v, want [child parent]", got)
	}

	if remaining := c.Flush(); len(remaining) != 0 {
		t.Errorf("Flush() left %v", remaining)
	}
	if FileExists(parent) {
		t.Errorf("parent still exists after Flush")
	}
	if len(c.Pending()) != 0 {
		t.Errorf("Pending() not empty after Flush")
	}
}

func TestCleanup_FlushReportsFailures(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "parent")
	writeFile(t, filepath.Join(parent, "child.txt"), "x")

	var c Cleanup
	c.Defer(parent)
	remaining := c.Flush()
	if len(remaining) != 1 || remaining[0] != parent {
		t.Errorf("Flush() = %v, want [%s]", remaining, parent)
	}
	if len(c.Pending()) != 0 {
		t.Errorf("failed paths were requeued")
	}
}

func TestCleanup_FlushLogsThroughConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	parent := filepath.Join(t.TempDir(), "parent")
	writeFile(t, filepath.Join(parent, "child.txt"), "x")

	var c Cleanup
	c.Defer(parent)
	c.Flush()

	out := buf.String()
	if !strings.Contains(out, `"msg":"deferred delete failed"`) {
		t.Errorf("log output %q lacks the failed deferred delete", out)
	}
	if !strings.Contains(out, parent) {
		t.Errorf("log output %q does not name %s", out, parent)
	}
}
