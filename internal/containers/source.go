package containers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Source reads container names from the business database. The mirror only
// ever queries it; rows are maintained by the systems that create containers.
type Source struct {
	db *sql.DB
}

// Open opens the container database at path.
func Open(path string) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open container database: %w", err)
	}
	return &Source{db: db}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

// Names returns the names of containers updated within the last daysBack
// days, oldest first. daysBack <= 0 returns every container. updated_at is
// stored as unix seconds.
func (s *Source) Names(ctx context.Context, daysBack int) ([]string, error) {
	query := `SELECT name FROM containers ORDER BY updated_at, name`
	var args []any
	if daysBack > 0 {
		query = `SELECT name FROM containers WHERE updated_at >= ? ORDER BY updated_at, name`
		args = append(args, time.Now().AddDate(0, 0, -daysBack).Unix())
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query containers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan container name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read container names: %w", err)
	}

	return names, nil
}

// StaticSource serves a fixed, pre-ordered list of container names. It backs
// the --containers flag and tests.
type StaticSource []string

func (s StaticSource) Names(ctx context.Context, daysBack int) ([]string, error) {
	return s, nil
}
