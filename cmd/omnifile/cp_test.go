package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/grokify/omnifile"
)

// resetCpFlags restores the cp flags after a test.
func resetCpFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_ = cpCmd.Flags().Set("level", strconv.Itoa(omnifile.DefaultCompression))
		_ = cpCmd.Flags().Set("decompress", "false")
		_ = cpCmd.Flags().Set("remove-source", "false")
	})
}

// TestCopyFileCompress checks that the destination defaults to a compressed
// stream and the source file survives.
func TestCopyFileCompress(t *testing.T) {
	muteLogs(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	data := []byte("squeeze me")
	writeTestFile(t, omnifile.KindPlain, src, data)
	dst := filepath.Join(tmpDir, "dst.gz")

	resetCpFlags(t)
	if code := copyFile(cpCmd, src, dst); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	kind, err := omnifile.DetectKind(dst)
	if err != nil {
		t.Fatalf("DetectKind failed: %v", err)
	}
	if kind != omnifile.KindGzip {
		t.Errorf("expected dst kind=%v, got %v", omnifile.KindGzip, kind)
	}
	if got := readTestFile(t, omnifile.KindGzip, dst); !bytes.Equal(got, data) {
		t.Errorf("expected dst content %q, got %q", data, got)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("expected source kept after a plain copy: %v", err)
	}
}

// TestCopyFileDecompress checks that -d writes the destination as a plain
// file.
func TestCopyFileDecompress(t *testing.T) {
	muteLogs(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.gz")
	data := []byte("expand me")
	writeTestFile(t, omnifile.KindGzip, src, data)
	dst := filepath.Join(tmpDir, "dst.txt")

	resetCpFlags(t)
	if err := cpCmd.Flags().Set("decompress", "true"); err != nil {
		t.Fatalf("Set decompress flag failed: %v", err)
	}
	if code := copyFile(cpCmd, src, dst); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("expected dst content %q, got %q", data, got)
	}
}

// TestCopyFileLevels checks that --level parses and flows through to the
// destination writer at each accepted value.
func TestCopyFileLevels(t *testing.T) {
	muteLogs(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	data := bytes.Repeat([]byte("abcd"), 2048)
	writeTestFile(t, omnifile.KindPlain, src, data)

	tests := []struct {
		name  string
		level string
	}{
		{name: "best_speed", level: "1"},
		{name: "default", level: "-1"},
		{name: "best_compression", level: "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCpFlags(t)
			if err := cpCmd.Flags().Set("level", tt.level); err != nil {
				t.Fatalf("Set level flag failed: %v", err)
			}
			dst := filepath.Join(tmpDir, tt.name+".gz")
			if code := copyFile(cpCmd, src, dst); code != 0 {
				t.Fatalf("expected exit code 0, got %d", code)
			}
			if got := readTestFile(t, omnifile.KindGzip, dst); !bytes.Equal(got, data) {
				t.Errorf("destination content does not match the source at level %s", tt.level)
			}
		})
	}
}

// TestCopyFileRemoveSource checks that --remove-source drops the source only
// after a successful copy.
func TestCopyFileRemoveSource(t *testing.T) {
	muteLogs(t)
	tmpDir := t.TempDir()
	data := []byte("moved along")

	src := filepath.Join(tmpDir, "src.txt")
	writeTestFile(t, omnifile.KindPlain, src, data)
	dst := filepath.Join(tmpDir, "dst.gz")

	resetCpFlags(t)
	if err := cpCmd.Flags().Set("remove-source", "true"); err != nil {
		t.Fatalf("Set remove-source flag failed: %v", err)
	}
	if code := copyFile(cpCmd, src, dst); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("expected source removed after the copy, Stat = %v", err)
	}
	if got := readTestFile(t, omnifile.KindGzip, dst); !bytes.Equal(got, data) {
		t.Errorf("expected dst content %q, got %q", data, got)
	}

	// A failed copy keeps the source in place
	src2 := filepath.Join(tmpDir, "src2.txt")
	writeTestFile(t, omnifile.KindPlain, src2, data)
	badDst := filepath.Join(tmpDir, "no-such-dir", "dst.gz")
	if code := copyFile(cpCmd, src2, badDst); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if _, err := os.Stat(src2); err != nil {
		t.Errorf("expected source kept after a failed copy: %v", err)
	}
}

// TestCopyFileMissingSource checks that detection fails cleanly and nothing
// is written.
func TestCopyFileMissingSource(t *testing.T) {
	muteLogs(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "missing.txt")
	dst := filepath.Join(tmpDir, "dst.gz")

	resetCpFlags(t)
	if code := copyFile(cpCmd, src, dst); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("expected no destination file, Stat = %v", err)
	}
}
