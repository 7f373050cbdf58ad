package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/grokify/omnifile"
	"github.com/spf13/cobra"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat FILE...",
	Short: "Stream files to stdout, decompressing gzip streams",
	Long:  `Stream files to stdout, decompressing gzip streams`,
	Args:  cobra.MinimumNArgs(1),
	Run:   runCat,
}

func init() {
	catCmd.Flags().BoolP("gzip", "z", false, "Treat files as gzip streams")
	catCmd.Flags().BoolP("auto", "a", false, "Detect the backend per file from its magic bytes")
}

func runCat(cmd *cobra.Command, files []string) {
	if code := catFiles(cmd, files); code != 0 {
		os.Exit(code)
	}
}

// catFiles streams each file to the command's stdout in argument order and
// returns a nonzero exit code on the first failure.
func catFiles(cmd *cobra.Command, files []string) int {
	for _, path := range files {
		kind, err := resolveKind(cmd, path)
		if err != nil {
			slog.Error("unable to detect file kind", "err", err.Error(), "file", path)
			return 1
		}
		h, err := omnifile.Open(kind, path, "rb", omnifile.WithLogger(slog.Default()))
		if err != nil {
			slog.Error("unable to open file", "err", err.Error(), "file", path)
			return 1
		}
		if _, err := io.Copy(cmd.OutOrStdout(), h); err != nil {
			_ = h.Close()
			slog.Error("read failed", "err", err.Error(), "file", path)
			return 1
		}
		if err := h.Close(); err != nil {
			slog.Error("close failed", "err", err.Error(), "file", path)
			return 1
		}
	}
	return 0
}
