package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"s3mirror/config"
)

var (
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "s3mirror",
	Short: "Incremental mirror of S3 containers to a local directory",
	Long: `S3 Mirror is a command-line tool that mirrors S3 containers to a local
directory, downloading only objects that are new or changed since the last run.
Every run appends a result record under the local root; the next run replays
those records to decide which objects it can skip.
Configuration is loaded from .env file or environment variables`,
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(historyCmd)

	rootCmd.PersistentFlags().StringP("bucket", "b", "", "Override bucket name from config")
	rootCmd.PersistentFlags().StringP("local-root", "l", "", "Override local root directory from config")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func getBucketName(cmd *cobra.Command) string {
	bucket, _ := cmd.Flags().GetString("bucket")
	if bucket != "" {
		return bucket
	}
	return cfg.BucketName
}

func getLocalRoot(cmd *cobra.Command) string {
	root, _ := cmd.Flags().GetString("local-root")
	if root != "" {
		return root
	}
	return cfg.LocalRoot
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if isVerbose(cmd) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
