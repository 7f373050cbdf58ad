package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/grokify/omnifile"
)

// TestSizeFiles checks the flag-to-backend wiring and the tab-separated
// output lines.
func TestSizeFiles(t *testing.T) {
	tmpDir := t.TempDir()
	plainData := []byte("twelve bytes")
	gzipData := bytes.Repeat([]byte("hello "), 100)

	plain := filepath.Join(tmpDir, "plain.txt")
	writeTestFile(t, omnifile.KindPlain, plain, plainData)
	gzipped := filepath.Join(tmpDir, "data.gz")
	writeTestFile(t, omnifile.KindGzip, gzipped, gzipData)

	tests := []struct {
		name     string
		gzip     bool
		auto     bool
		path     string
		wantSize int
	}{
		{name: "plain_default", path: plain, wantSize: len(plainData)},
		{name: "gzip_flag", gzip: true, path: gzipped, wantSize: len(gzipData)},
		{name: "auto_gzip", auto: true, path: gzipped, wantSize: len(gzipData)},
		{name: "auto_plain", auto: true, path: plain, wantSize: len(plainData)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKindFlags(t, sizeCmd)
			if tt.gzip {
				if err := sizeCmd.Flags().Set("gzip", "true"); err != nil {
					t.Fatalf("Set gzip flag failed: %v", err)
				}
			}
			if tt.auto {
				if err := sizeCmd.Flags().Set("auto", "true"); err != nil {
					t.Fatalf("Set auto flag failed: %v", err)
				}
			}
			var buf bytes.Buffer
			sizeCmd.SetOut(&buf)

			if code := sizeFiles(sizeCmd, []string{tt.path}); code != 0 {
				t.Fatalf("expected exit code 0, got %d", code)
			}
			want := fmt.Sprintf("%d\t%s\n", tt.wantSize, tt.path)
			if got := buf.String(); got != want {
				t.Errorf("expected output %q, got %q", want, got)
			}
		})
	}
}

// TestSizeFilesUnknown checks the exit code when a file cannot be measured.
func TestSizeFilesUnknown(t *testing.T) {
	muteLogs(t)
	tmpDir := t.TempDir()

	text := filepath.Join(tmpDir, "notes.txt")
	writeTestFile(t, omnifile.KindPlain, text, []byte("not a compressed stream"))

	tests := []struct {
		name string
		gzip bool
		auto bool
		path string
	}{
		{name: "missing_file", path: filepath.Join(tmpDir, "missing.txt")},
		{name: "text_forced_gzip", gzip: true, path: text},
		{name: "missing_file_auto", auto: true, path: filepath.Join(tmpDir, "missing.gz")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKindFlags(t, sizeCmd)
			if tt.gzip {
				if err := sizeCmd.Flags().Set("gzip", "true"); err != nil {
					t.Fatalf("Set gzip flag failed: %v", err)
				}
			}
			if tt.auto {
				if err := sizeCmd.Flags().Set("auto", "true"); err != nil {
					t.Fatalf("Set auto flag failed: %v", err)
				}
			}
			var buf bytes.Buffer
			sizeCmd.SetOut(&buf)

			if code := sizeFiles(sizeCmd, []string{tt.path}); code != 1 {
				t.Errorf("expected exit code 1, got %d", code)
			}
			if buf.Len() != 0 {
				t.Errorf("expected no output for an unmeasurable file, got %q", buf.String())
			}
		})
	}
}

// TestSizeFilesPartialFailure checks that one unmeasurable file does not
// suppress the lines for the others.
func TestSizeFilesPartialFailure(t *testing.T) {
	muteLogs(t)
	tmpDir := t.TempDir()
	good := filepath.Join(tmpDir, "good.txt")
	goodData := []byte("measurable")
	writeTestFile(t, omnifile.KindPlain, good, goodData)
	missing := filepath.Join(tmpDir, "missing.txt")

	resetKindFlags(t, sizeCmd)
	var buf bytes.Buffer
	sizeCmd.SetOut(&buf)

	if code := sizeFiles(sizeCmd, []string{missing, good}); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	want := fmt.Sprintf("%d\t%s\n", len(goodData), good)
	if got := buf.String(); got != want {
		t.Errorf("expected output %q, got %q", want, got)
	}
}
