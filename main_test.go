package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirmProceed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false}, // EOF with no input
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := confirmProceed(strings.NewReader(tt.input), &out)
		if got != tt.want {
			t.Errorf("confirmProceed(%q) = %v; want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Proceed?") {
			t.Errorf("prompt not written for input %q", tt.input)
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	if code := run([]string{}); code != 1 {
		t.Errorf("run with no args = %d; want 1", code)
	}
	if code := run([]string{"only-one-arg"}); code != 1 {
		t.Errorf("run with one arg = %d; want 1", code)
	}

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	if code := run([]string{missing, t.TempDir()}); code != 1 {
		t.Errorf("run with missing source = %d; want 1", code)
	}

	// A regular file is not a valid source directory.
	dir := t.TempDir()
	file := writeTempFile(t, dir, "f.jpg", "x")
	if code := run([]string{file, t.TempDir()}); code != 1 {
		t.Errorf("run with file source = %d; want 1", code)
	}
}

func TestRunDeclinedConfirmation(t *testing.T) {
	// Declining must exit 0 with no side effects; stdin is not a terminal
	// here so the prompt reads EOF, which declines.
	src := t.TempDir()
	dest := t.TempDir()
	writeTempFile(t, src, "img.jpg", "x")

	if code := run([]string{src, dest}); code != 0 {
		t.Errorf("declined run = %d; want 0", code)
	}
	if entries, _ := os.ReadDir(dest); len(entries) != 0 {
		t.Error("declined run touched the destination")
	}
	if _, err := os.Stat(filepath.Join(src, "img.jpg")); err != nil {
		t.Errorf("declined run touched the source: %v", err)
	}
}

func TestRunDryRun(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeTempFile(t, src, "img.jpg", "no exif in here")

	if code := run([]string{"--dry-run", src, dest}); code != 0 {
		t.Errorf("dry run = %d; want 0", code)
	}
	if entries, _ := os.ReadDir(dest); len(entries) != 0 {
		t.Error("dry run touched the destination")
	}
}
