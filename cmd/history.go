package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"s3mirror/internal/mirror"
	"s3mirror/internal/models"
	"s3mirror/pkg/utils"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize the result records under the local root",
	Long: `Summarize the result-record history of the local mirror.

Reads every result record under the local root with the same reader the
mirror run uses, so a malformed record fails here exactly as it would fail a
run.`,
	Example: `  # Summarize the configured local root
  s3mirror history

  # Summarize a different mirror directory
  s3mirror history --local-root /mnt/mirror`,
	Run: func(cmd *cobra.Command, args []string) {
		runHistory(cmd)
	},
}

func runHistory(cmd *cobra.Command) {
	localRoot := getLocalRoot(cmd)
	if localRoot == "" {
		utils.PrintError(fmt.Errorf("local root not configured; set LOCAL_ROOT or use --local-root"), "history")
		return
	}

	results, err := mirror.ReadResults(localRoot)
	if err != nil {
		utils.PrintError(err, "history")
		return
	}
	files, err := mirror.ResultFiles(localRoot)
	if err != nil {
		utils.PrintError(err, "history")
		return
	}

	state := mirror.FlattenState(results)
	summary := models.HistorySummary{
		LocalRoot:    localRoot,
		RecordCount:  len(results),
		TrackedPaths: len(state),
	}
	for _, r := range results {
		summary.TotalDownloads += len(r.Downloads)
		summary.TotalErrors += len(r.Errors)
	}
	if len(files) > 0 {
		summary.LatestRecord = filepath.Base(files[len(files)-1])
	}
	var latest time.Time
	for _, ts := range state {
		if ts.After(latest) {
			latest = ts
		}
	}
	if !latest.IsZero() {
		summary.LatestDownload = utils.FormatTime(latest)
	}

	if err := utils.PrintJSON(summary); err != nil {
		utils.PrintError(err, "history")
		return
	}

	if isVerbose(cmd) {
		cmd.Printf("Read %d result records\n", len(results))
	}
}
