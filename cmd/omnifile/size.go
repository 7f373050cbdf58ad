package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/grokify/omnifile"
	"github.com/spf13/cobra"
)

// sizeCmd represents the size command
var sizeCmd = &cobra.Command{
	Use:   "size FILE...",
	Short: "Print the logical size of each file in bytes",
	Long: `Print the logical size of each file in bytes.

For gzip files the size is the uncompressed stream length, which requires
decompressing the whole file.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSize,
}

func init() {
	sizeCmd.Flags().BoolP("gzip", "z", false, "Treat files as gzip streams")
	sizeCmd.Flags().BoolP("auto", "a", false, "Detect the backend per file from its magic bytes")
}

func runSize(cmd *cobra.Command, files []string) {
	if code := sizeFiles(cmd, files); code != 0 {
		os.Exit(code)
	}
}

// sizeFiles prints one "size<TAB>path" line per measurable file and returns
// a nonzero exit code when any file cannot be measured. Unmeasurable files
// are logged and skipped so the remaining files still get their lines.
func sizeFiles(cmd *cobra.Command, files []string) int {
	exitCode := 0
	for _, path := range files {
		kind, err := resolveKind(cmd, path)
		if err != nil {
			slog.Error("unable to detect file kind", "err", err.Error(), "file", path)
			exitCode = 1
			continue
		}
		size := omnifile.FileSize(path, kind, omnifile.WithLogger(slog.Default()))
		if size == omnifile.SizeUnknown {
			slog.Error("unable to measure file", "file", path, "kind", kind.String())
			exitCode = 1
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", size, path)
	}
	return exitCode
}
