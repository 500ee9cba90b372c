package transcript

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists fetched transcripts keyed by video and language, backed by
// SQLite. A hit lets a repeat run skip the network fetch entirely.
type Cache struct {
	db   *sql.DB
	path string
}

// OpenCache initializes or connects to the transcript cache database.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "transcripts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	video_id   TEXT NOT NULL,
	language   TEXT NOT NULL,
	segments   TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	PRIMARY KEY (video_id, language)
)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Cache{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the cache database location.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Get returns the cached segments for the video and language, or ok=false on
// a miss. An unreadable row is treated as a miss rather than an error so a
// corrupt cache never blocks a run.
func (c *Cache) Get(ctx context.Context, videoID, language string) ([]Segment, bool, error) {
	if c == nil || c.db == nil {
		return nil, false, nil
	}
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT segments FROM transcripts WHERE video_id = ? AND language = ?`,
		videoID, language,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query transcript cache: %w", err)
	}

	var segments []Segment
	if err := json.Unmarshal([]byte(payload), &segments); err != nil {
		return nil, false, nil
	}
	return segments, true, nil
}

// Put stores segments for the video and language, replacing any prior entry.
func (c *Cache) Put(ctx context.Context, videoID, language string, segments []Segment) error {
	if c == nil || c.db == nil {
		return nil
	}
	payload, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcripts (video_id, language, segments, fetched_at) VALUES (?, ?, ?, ?)`,
		videoID, language, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}
