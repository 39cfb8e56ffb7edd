package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"s3mirror/internal/models"
)

// ObjectDownloader transfers one remote object's content to a local file.
type ObjectDownloader interface {
	DownloadObject(ctx context.Context, container, objectName, destPath string) error
}

// Executor downloads a single object with clean-replacement semantics: any
// existing file is removed before the transfer so a failed download never
// leaves a half-overwritten copy behind.
type Executor struct {
	Downloader ObjectDownloader
	Logger     *slog.Logger
}

// Fetch replaces the file at localPath with the remote object's content and
// stamps the file's modification time with stamp. Failures are captured as
// an ObjectError rather than returned: one broken object must not abort the
// run. Exactly one of the two return values is non-nil.
func (e *Executor) Fetch(ctx context.Context, container, objectName, localPath string, stamp time.Time) (*models.DownloadRecord, *models.ObjectError) {
	if err := e.fetch(ctx, container, objectName, localPath, stamp); err != nil {
		e.Logger.Warn("download failed", "container", container, "object", objectName, "error", err)
		return nil, &models.ObjectError{ObjectName: objectName, Message: err.Error()}
	}
	return &models.DownloadRecord{LocalFile: localPath, Timestamp: stamp}, nil
}

func (e *Executor) fetch(ctx context.Context, container, objectName, localPath string, stamp time.Time) error {
	if _, err := os.Stat(localPath); err == nil {
		if err := os.Remove(localPath); err != nil {
			return fmt.Errorf("failed to remove existing file %s: %w", localPath, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", localPath, err)
	}

	if err := e.Downloader.DownloadObject(ctx, container, objectName, localPath); err != nil {
		// Drop whatever partial content the failed transfer produced so the
		// next run sees a missing file rather than a fresh-looking stub.
		os.Remove(localPath)
		return err
	}

	if err := os.Chtimes(localPath, stamp, stamp); err != nil {
		return fmt.Errorf("failed to stamp modification time on %s: %w", localPath, err)
	}

	return nil
}
