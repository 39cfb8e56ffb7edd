package mirror

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"s3mirror/internal/models"
)

// BuildState reconstructs the local file state for a run from the result
// history under root. When no history exists yet, a baseline is synthesized
// from the mirror's actual on-disk timestamps and persisted as the first
// record, so every later run has a queryable log to build on.
func BuildState(root string, logger *slog.Logger, now time.Time) (LocalFileState, error) {
	history, err := ReadResults(root)
	if err != nil {
		return nil, err
	}

	if len(history) == 0 {
		baseline, err := scanBaseline(root)
		if err != nil {
			return nil, err
		}
		path, err := WriteResult(root, baseline, now)
		if err != nil {
			return nil, err
		}
		logger.Info("no result history found, wrote bootstrap snapshot",
			"record", path, "files", len(baseline.Downloads))
		history = []models.RunResult{*baseline}
	}

	return FlattenState(history), nil
}

// FlattenState folds every historical download into one mapping, keeping the
// newest timestamp per path. A stale entry never overrides a newer one, no
// matter where it appears in the history.
func FlattenState(history []models.RunResult) LocalFileState {
	state := make(LocalFileState)
	for _, r := range history {
		for _, d := range r.Downloads {
			if current, ok := state[d.LocalFile]; !ok || d.Timestamp.After(current) {
				state[d.LocalFile] = d.Timestamp
			}
		}
	}
	return state
}

// scanBaseline builds a bootstrap snapshot from the filesystem. Each
// top-level subdirectory of root is treated as a container and every file
// under it is recorded with its on-disk modification time.
func scanBaseline(root string) (*models.RunResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read local root: %w", err)
	}

	result := models.NewRunResult()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		result.Containers = append(result.Containers, entry.Name())

		dir := filepath.Join(root, entry.Name())
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				result.Downloads = append(result.Downloads, models.DownloadRecord{
					LocalFile: path,
					Timestamp: info.ModTime(),
				})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
	}

	return result, nil
}
