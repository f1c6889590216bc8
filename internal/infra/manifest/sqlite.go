// Package manifest keeps a local record of completed clips in an
// embedded SQLite database. The filesystem remains the source of truth
// for resume decisions; the manifest exists so downstream tooling can
// query what a run produced without walking the output tree.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS clip_completions (
	video_id     TEXT NOT NULL,
	clip_id      TEXT NOT NULL,
	media_path   TEXT NOT NULL,
	completed_at TEXT NOT NULL,
	PRIMARY KEY (video_id, clip_id)
);
`

func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest db: %w", err)
	}
	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids SQLITE_BUSY between workers.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create manifest schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) RecordCompletion(ctx context.Context, videoID, clipID, mediaPath string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO clip_completions (video_id, clip_id, media_path, completed_at)
		 VALUES (?, ?, ?, ?)`,
		videoID, clipID, mediaPath, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record completion %s/%s: %w", videoID, clipID, err)
	}
	return nil
}

// Completed returns the clip IDs recorded for a video, ordered.
func (s *Store) Completed(ctx context.Context, videoID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT clip_id FROM clip_completions WHERE video_id = ? ORDER BY clip_id`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query completions for %s: %w", videoID, err)
	}
	defer rows.Close()

	var clips []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		clips = append(clips, id)
	}
	return clips, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
