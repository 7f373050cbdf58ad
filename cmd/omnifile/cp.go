package main

import (
	"log/slog"
	"os"

	"github.com/grokify/omnifile"
	"github.com/spf13/cobra"
)

// cpCmd represents the cp command
var cpCmd = &cobra.Command{
	Use:   "cp SRC DST",
	Short: "Copy a file across backends, compressing or decompressing",
	Long: `Copy SRC to DST.

The source backend is detected from its magic bytes. The destination is
written gzip-compressed by default; pass --decompress to write it as a
plain file instead. With --remove-source the source file is removed after
a successful copy, like gzip(1) replacing the original.`,
	Args: cobra.ExactArgs(2),
	Run:  runCp,
}

func init() {
	cpCmd.Flags().IntP("level", "l", omnifile.DefaultCompression, "Compression level for the destination (0-9)")
	cpCmd.Flags().BoolP("decompress", "d", false, "Write the destination uncompressed")
	cpCmd.Flags().Bool("remove-source", false, "Remove SRC after a successful copy")
}

func runCp(cmd *cobra.Command, args []string) {
	if code := copyFile(cmd, args[0], args[1]); code != 0 {
		os.Exit(code)
	}
}

// copyFile copies src to dst per the command flags and returns the exit
// code. A failed copy leaves the source in place, even with --remove-source.
func copyFile(cmd *cobra.Command, src, dst string) int {
	level, _ := cmd.Flags().GetInt("level")
	decompress, _ := cmd.Flags().GetBool("decompress")
	removeSource, _ := cmd.Flags().GetBool("remove-source")

	srcKind, err := omnifile.DetectKind(src)
	if err != nil {
		slog.Error("unable to detect file kind", "err", err.Error(), "file", src)
		return 1
	}
	dstKind := omnifile.KindGzip
	if decompress {
		dstKind = omnifile.KindPlain
	}

	opts := []omnifile.Option{
		omnifile.WithLogger(slog.Default()),
		omnifile.WithLevel(level),
	}

	var written int64
	if removeSource {
		written, err = omnifile.Move(srcKind, src, dstKind, dst, opts...)
	} else {
		written, err = omnifile.Copy(srcKind, src, dstKind, dst, opts...)
	}
	if err != nil {
		slog.Error("copy failed", "err", err.Error(), "src", src, "dst", dst)
		return 1
	}
	slog.Info("copied", "src", src, "dst", dst, "bytes", written,
		"srcKind", srcKind.String(), "dstKind", dstKind.String(),
		"removedSource", removeSource)
	return 0
}
