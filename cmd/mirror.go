package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"s3mirror/internal/containers"
	"s3mirror/internal/mirror"
	"s3mirror/internal/s3client"
	"s3mirror/pkg/utils"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Run one incremental mirror pass",
	Long: `Run one incremental mirror pass against the configured bucket.

The command will:
- Rebuild the last known state from the result records under the local root
  (or bootstrap it from on-disk timestamps on the first run)
- List each container's objects and download only those that are new or changed
- Write one new result record with this run's downloads and per-object errors

Container names come from the container database unless --containers is given.
A failed object download is recorded and never aborts the run; a failed
container listing does.`,
	Example: `  # Mirror every container
  s3mirror mirror

  # Only containers updated in the last 7 days
  s3mirror mirror --days-back 7

  # Mirror two specific containers, skipping the container database
  s3mirror mirror --containers invoices,receipts

  # Restrict to one object name prefix, verbose output
  s3mirror mirror --prefix "2026/" --verbose`,
	Run: func(cmd *cobra.Command, args []string) {
		runMirror(cmd)
	},
}

func runMirror(cmd *cobra.Command) {
	daysBack, _ := cmd.Flags().GetInt("days-back")
	prefix, _ := cmd.Flags().GetString("prefix")
	containerNames, _ := cmd.Flags().GetStringSlice("containers")
	timeout, _ := cmd.Flags().GetInt("timeout")

	localRoot := getLocalRoot(cmd)
	if localRoot == "" {
		utils.PrintError(fmt.Errorf("local root not configured; set LOCAL_ROOT or use --local-root"), "mirror")
		return
	}

	cfg.BucketName = getBucketName(cmd)

	client, err := s3client.New(cfg)
	if err != nil {
		utils.PrintError(err, "mirror")
		return
	}

	var source mirror.ContainerSource
	if len(containerNames) > 0 {
		source = containers.StaticSource(containerNames)
	} else {
		dbSource, err := containers.Open(cfg.ContainerDBPath)
		if err != nil {
			utils.PrintError(err, "mirror")
			return
		}
		defer dbSource.Close()
		source = dbSource
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	runner := &mirror.Runner{
		Containers: source,
		Lister:     client,
		Downloader: client,
		LocalRoot:  localRoot,
		Prefix:     prefix,
		DaysBack:   daysBack,
		Logger:     newLogger(cmd),
		Now:        time.Now,
	}

	result, err := runner.Run(ctx)
	if err != nil {
		utils.PrintError(err, "mirror")
		return
	}

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "mirror")
		return
	}
}

func init() {
	mirrorCmd.Flags().Int("days-back", 0, "Only process containers updated within the last N days (0 = all)")
	mirrorCmd.Flags().String("prefix", "", "Only process objects whose name starts with this prefix")
	mirrorCmd.Flags().StringSlice("containers", nil, "Explicit container names, bypassing the container database")
	mirrorCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
}
