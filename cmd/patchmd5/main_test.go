package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	hello := filepath.Join(dir, "hello.txt")
	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(hello, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.txt")

	tests := []struct {
		name       string
		args       []string
		wantStatus int
		wantOut    string
		wantErr    string
	}{
		{
			name:       "all readable",
			args:       []string{hello, empty},
			wantStatus: 0,
			wantOut: "5eb63bbbe01eeed093cb22bb8f5acdc3  " + hello + "\n" +
				"d41d8cd98f00b204e9800998ecf8427e  " + empty + "\n",
		},
		{
			name:       "one missing",
			args:       []string{missing, hello},
			wantStatus: 1,
			wantOut:    "5eb63bbbe01eeed093cb22bb8f5acdc3  " + hello + "\n",
			wantErr:    "file not found",
		},
		{
			name:       "no files",
			args:       nil,
			wantStatus: 2,
			wantErr:    "usage:",
		},
		{
			name:       "unknown flag",
			args:       []string{"-x", hello},
			wantStatus: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.wantStatus {
				t.Errorf("run() = %d, want %d (stderr %q)", got, tt.wantStatus, stderr.String())
			}
			if stdout.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
			if tt.wantErr != "" && !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRun_Entry(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "classes.jar")
	f, err := os.Create(jar)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	fw, err := w.Create("classes.dex")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("hello world")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if got := run([]string{"-e", "classes.dex", jar}, &stdout, &stderr); got != 0 {
		t.Fatalf("run() = %d, stderr %q", got, stderr.String())
	}
	if want := "5eb63bbbe01eeed093cb22bb8f5acdc3  " + jar + "\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}

	stdout.Reset()
	stderr.Reset()
	if got := run([]string{"-e", "resources.arsc", jar}, &stdout, &stderr); got != 1 {
		t.Errorf("run() with missing entry = %d, want 1", got)
	}
	if !strings.Contains(stderr.String(), "archive entry not found") {
		t.Errorf("stderr = %q, want entry not found", stderr.String())
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if got := run([]string{"-version"}, &stdout, &stderr); got != 0 {
		t.Fatalf("run(-version) = %d", got)
	}
	if !strings.HasPrefix(stdout.String(), "patchmd5 version ") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
