package main

import (
	"log/slog"
	"os"

	"github.com/grokify/omnifile"
	"github.com/spf13/cobra"
)

func init() {
	// Add global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")

	// Setup logger before running subcommands
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger(cmd)
	}

	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(cpCmd)
}

// setupLogger configures the global logger based on flags. Logs go to
// stderr; stdout is reserved for file contents and sizes.
func setupLogger(cmd *cobra.Command) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: getLogLevel(verbose),
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: getLogLevel(verbose),
		})
	}

	slog.SetDefault(slog.New(handler))
}

// getLogLevel returns the appropriate log level based on verbose flag
func getLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// resolveKind picks the backend for path from the --gzip/--auto flags.
func resolveKind(cmd *cobra.Command, path string) (omnifile.Kind, error) {
	if auto, _ := cmd.Flags().GetBool("auto"); auto {
		return omnifile.DetectKind(path)
	}
	if gz, _ := cmd.Flags().GetBool("gzip"); gz {
		return omnifile.KindGzip, nil
	}
	return omnifile.KindPlain, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "omnifile",
	Short: "Read, write and measure plain or gzip-compressed files",
	Long:  `Read, write and measure plain or gzip-compressed files`,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
