package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"s3mirror/config"
	"s3mirror/internal/mirror"
	"s3mirror/internal/models"
)

func TestHistoryCommand(t *testing.T) {
	localRoot := t.TempDir()

	day := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	result := models.NewRunResult()
	result.Containers = append(result.Containers, "c1")
	result.Downloads = append(result.Downloads, models.DownloadRecord{
		LocalFile: filepath.Join(localRoot, "c1", "a.png"),
		Timestamp: day,
	})
	if _, err := mirror.WriteResult(localRoot, result, day); err != nil {
		t.Fatalf("Failed to write result record: %v", err)
	}

	oldCfg := cfg
	cfg = &config.Config{LocalRoot: localRoot}
	defer func() { cfg = oldCfg }()

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs([]string{"history", "--local-root", localRoot})
	err := rootCmd.Execute()

	// Restore stdout
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("History command failed: %v", err)
	}

	if !strings.Contains(output, `"record_count": 1`) {
		t.Errorf("Output doesn't contain record count: %s", output)
	}

	if !strings.Contains(output, "result-26-08-29-1.json") {
		t.Errorf("Output doesn't contain latest record name: %s", output)
	}

	if !strings.Contains(output, `"tracked_paths": 1`) {
		t.Errorf("Output doesn't contain tracked paths: %s", output)
	}
}

func TestHistoryCommandFailsOnCorruptRecord(t *testing.T) {
	localRoot := t.TempDir()
	badRecord := filepath.Join(localRoot, "result-26-08-29-1.json")
	if err := os.WriteFile(badRecord, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt record: %v", err)
	}

	oldCfg := cfg
	cfg = &config.Config{LocalRoot: localRoot}
	defer func() { cfg = oldCfg }()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs([]string{"history", "--local-root", localRoot})
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("History command returned unexpected error: %v", err)
	}

	if !strings.Contains(output, "failed to parse result record") {
		t.Errorf("Output doesn't contain the parse failure: %s", output)
	}
}
