package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"s3mirror/internal/models"
)

// ContainerSource supplies the ordered container names to process this run.
type ContainerSource interface {
	Names(ctx context.Context, daysBack int) ([]string, error)
}

// ObjectLister enumerates one container's objects lazily: fn is invoked once
// per object in listing order, and a non-nil return stops the enumeration.
type ObjectLister interface {
	ListObjects(ctx context.Context, container, prefix string, fn func(models.RemoteObject) error) error
}

// StopPolicy is consulted after each successful download. Returning true
// ends the run early, skipping all remaining objects and containers.
type StopPolicy func(models.DownloadRecord) bool

// ContinueAlways is the default stop policy.
func ContinueAlways(models.DownloadRecord) bool { return false }

var errStopRun = errors.New("stop requested by policy")

// Runner drives one mirror run: reconstruct state, walk containers and
// objects sequentially, download what the decision requires, and write a
// single result record at the end. Failures listing a container are fatal;
// per-object download failures are collected into the result's errors.
type Runner struct {
	Containers ContainerSource
	Lister     ObjectLister
	Downloader ObjectDownloader
	LocalRoot  string
	Prefix     string
	DaysBack   int
	Stop       StopPolicy
	Logger     *slog.Logger
	Now        func() time.Time
}

// Run executes a single mirror pass. The returned result is also persisted
// as a new record under the local root, whether the run ended by exhaustion,
// cancellation, or the stop policy. A fatal error writes no record.
func (r *Runner) Run(ctx context.Context) (*models.RunResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	stop := r.Stop
	if stop == nil {
		stop = ContinueAlways
	}
	nowFn := r.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	state, err := BuildState(r.LocalRoot, logger, now)
	if err != nil {
		return nil, err
	}

	names, err := r.Containers.Names(ctx, r.DaysBack)
	if err != nil {
		return nil, fmt.Errorf("failed to get container names: %w", err)
	}

	executor := &Executor{Downloader: r.Downloader, Logger: logger}
	result := models.NewRunResult()

	for _, container := range names {
		result.Containers = append(result.Containers, container)
		logger.Info("processing container", "container", container)

		err := r.Lister.ListObjects(ctx, container, r.Prefix, func(obj models.RemoteObject) error {
			localPath := filepath.Join(r.LocalRoot, container, obj.Name)

			decision := Decide(state, localPath, obj.LastModified, now)
			if !decision.Download {
				logger.Debug("skipping object", "container", container, "object", obj.Name, "reason", decision.Reason)
				return nil
			}

			// Cancellation is cooperative and checked once per object; a
			// download already in flight runs to completion or failure.
			if err := ctx.Err(); err != nil {
				return err
			}

			logger.Info("downloading object", "container", container, "object", obj.Name, "reason", decision.Reason)
			record, objErr := executor.Fetch(ctx, container, obj.Name, localPath, decision.Stamp)
			if objErr != nil {
				result.Errors = append(result.Errors, *objErr)
				return nil
			}
			result.Downloads = append(result.Downloads, *record)

			if stop(*record) {
				logger.Info("stop policy ended the run early", "container", container, "object", obj.Name)
				return errStopRun
			}
			return nil
		})
		if errors.Is(err, errStopRun) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", container, err)
		}
	}

	path, err := WriteResult(r.LocalRoot, result, now)
	if err != nil {
		return nil, err
	}
	logger.Info("run complete",
		"record", path,
		"containers", len(result.Containers),
		"downloads", len(result.Downloads),
		"errors", len(result.Errors))

	return result, nil
}
