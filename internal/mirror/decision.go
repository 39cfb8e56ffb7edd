package mirror

import (
	"os"
	"time"
)

// LocalFileState maps a local file path to the timestamp last confirmed
// synced for that path. It is rebuilt from the result log at the start of
// every run and discarded at the end.
type LocalFileState map[string]time.Time

const (
	ReasonLogCurrent   = "log shows local file is latest version"
	ReasonFileMissing  = "local file missing"
	ReasonNullModified = "blob last modified date is null"
	ReasonRemoteNewer  = "blob is newer than local file"
	ReasonFileCurrent  = "local file is latest version"
)

// Decision is the outcome of evaluating a single remote object.
type Decision struct {
	Download bool
	Reason   string
	// Stamp is the modification time to set on the downloaded file.
	// Only meaningful when Download is true.
	Stamp time.Time
}

// Decide determines whether the remote object behind localPath needs a fresh
// download. The result log takes precedence over the filesystem: when state
// covers the path with a timestamp at least as new as the remote's, the
// object is skipped without inspecting the disk at all, even if the local
// file has since disappeared.
func Decide(state LocalFileState, localPath string, remoteLastModified *time.Time, now time.Time) Decision {
	if logged, ok := state[localPath]; ok && remoteLastModified != nil && !logged.Before(*remoteLastModified) {
		return Decision{Reason: ReasonLogCurrent}
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return Decision{Download: true, Reason: ReasonFileMissing, Stamp: now}
	}
	if remoteLastModified == nil {
		return Decision{Download: true, Reason: ReasonNullModified, Stamp: now}
	}
	if remoteLastModified.After(info.ModTime()) {
		return Decision{Download: true, Reason: ReasonRemoteNewer, Stamp: *remoteLastModified}
	}
	return Decision{Reason: ReasonFileCurrent}
}
