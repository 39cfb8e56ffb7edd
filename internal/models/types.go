package models

import "time"

type RemoteObject struct {
	Name         string     `json:"name"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

type HistorySummary struct {
	LocalRoot      string `json:"local_root"`
	RecordCount    int    `json:"record_count"`
	TrackedPaths   int    `json:"tracked_paths"`
	TotalDownloads int    `json:"total_downloads"`
	TotalErrors    int    `json:"total_errors"`
	LatestRecord   string `json:"latest_record,omitempty"`
	LatestDownload string `json:"latest_download,omitempty"`
}
