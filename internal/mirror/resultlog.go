package mirror

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"s3mirror/internal/models"
)

const resultDateLayout = "06-01-02"

var resultFilePattern = regexp.MustCompile(`^result-(\d{2}-\d{2}-\d{2})-(\d+)\.json$`)

// WriteResult serializes r to a new record file under root, named
// result-<YY-MM-DD>-<N>.json where N is one past the highest sequence number
// already used on day. The next number is discovered by scanning the
// directory, so no counter survives between runs.
func WriteResult(root string, r *models.RunResult, day time.Time) (string, error) {
	seq, err := nextSequence(root, day)
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, fmt.Sprintf("result-%s-%d.json", day.Format(resultDateLayout), seq))
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write result record: %w", err)
	}

	return path, nil
}

func nextSequence(root string, day time.Time) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("failed to read local root: %w", err)
	}

	prefix := day.Format(resultDateLayout)
	max := 0
	for _, entry := range entries {
		m := resultFilePattern.FindStringSubmatch(entry.Name())
		if m == nil || m[1] != prefix {
			continue
		}
		if n, err := strconv.Atoi(m[2]); err == nil && n > max {
			max = n
		}
	}

	return max + 1, nil
}

// ResultFiles returns the paths of all result records under root in name
// order.
func ResultFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read local root: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && resultFilePattern.MatchString(entry.Name()) {
			files = append(files, filepath.Join(root, entry.Name()))
		}
	}

	// Order by day, then numerically by sequence, so "-10" sorts after "-2".
	sort.Slice(files, func(i, j int) bool {
		mi := resultFilePattern.FindStringSubmatch(filepath.Base(files[i]))
		mj := resultFilePattern.FindStringSubmatch(filepath.Base(files[j]))
		if mi[1] != mj[1] {
			return mi[1] < mj[1]
		}
		ni, _ := strconv.Atoi(mi[2])
		nj, _ := strconv.Atoi(mj[2])
		return ni < nj
	})

	return files, nil
}

// ReadResults deserializes every result record under root. A single
// unreadable or malformed record fails the whole read: a corrupt history
// cannot be trusted as the basis for skip decisions.
func ReadResults(root string) ([]models.RunResult, error) {
	files, err := ResultFiles(root)
	if err != nil {
		return nil, err
	}

	var results []models.RunResult
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read result record %s: %w", path, err)
		}
		var r models.RunResult
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse result record %s: %w", path, err)
		}
		results = append(results, r)
	}

	return results, nil
}
