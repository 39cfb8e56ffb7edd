package models

import "time"

type DownloadRecord struct {
	LocalFile string    `json:"local_file"`
	Timestamp time.Time `json:"timestamp"`
}

type ObjectError struct {
	ObjectName string `json:"object_name"`
	Message    string `json:"message"`
}

// RunResult is the durable record of one mirror run. Records are append-only:
// each run writes exactly one new result file and never rewrites an old one.
type RunResult struct {
	Containers []string         `json:"containers"`
	Downloads  []DownloadRecord `json:"downloads"`
	Errors     []ObjectError    `json:"errors"`
}

func NewRunResult() *RunResult {
	return &RunResult{
		Containers: []string{},
		Downloads:  []DownloadRecord{},
		Errors:     []ObjectError{},
	}
}
