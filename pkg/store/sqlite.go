package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tableflip.dev/moodlog/pkg/mood"
)

const sqliteFile = "moodlog.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS mood_entries (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	mood TEXT NOT NULL,
	mood_image TEXT NOT NULL,
	activities TEXT NOT NULL DEFAULT '[]',
	origin TEXT NOT NULL DEFAULT 'local',
	created_at TEXT NOT NULL DEFAULT ''
);
`

// SQLite is a Store backed by a single SQLite table.
type SQLite struct {
	db   *sql.DB
	feed *feed
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, opts ...Option) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s, err := NewSQLite(db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an open database and ensures the schema exists.
func NewSQLite(db *sql.DB, opts ...Option) (*SQLite, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	o := buildOptions(opts)
	s := &SQLite{db: db}
	s.feed = newFeed(s.List, o.logger)
	return s, nil
}

func (s *SQLite) Insert(ctx context.Context, e mood.Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	activities, err := encodeActivities(e.Activities)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO mood_entries (id, date, mood, mood_image, activities, origin, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.Mood, e.MoodImage, activities, string(e.Origin), formatCreated(e.Created),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	s.feed.publish()
	return nil
}

func (s *SQLite) Update(ctx context.Context, e mood.Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	activities, err := encodeActivities(e.Activities)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE mood_entries SET date = ?, mood = ?, mood_image = ?, activities = ?, origin = ?, created_at = ? WHERE id = ?`,
		e.Date, e.Mood, e.MoodImage, activities, string(e.Origin), formatCreated(e.Created), e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.feed.publish()
	return nil
}

func (s *SQLite) Delete(ctx context.Context, e mood.Entry) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mood_entries WHERE id = ?`, e.ID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.feed.publish()
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (mood.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, mood, mood_image, activities, origin, created_at FROM mood_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return mood.Entry{}, ErrNotFound
	}
	if err != nil {
		return mood.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func (s *SQLite) List(ctx context.Context) ([]mood.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, mood, mood_image, activities, origin, created_at FROM mood_entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	out := make([]mood.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	mood.Sort(out)
	return out, nil
}

func (s *SQLite) ObserveAll(ctx context.Context) (<-chan []mood.Entry, error) {
	return s.feed.subscribe(ctx)
}

func (s *SQLite) Close() error {
	s.feed.close()
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (mood.Entry, error) {
	var (
		e          mood.Entry
		activities string
		origin     string
		created    string
	)
	if err := row.Scan(&e.ID, &e.Date, &e.Mood, &e.MoodImage, &activities, &origin, &created); err != nil {
		return mood.Entry{}, err
	}
	e.Activities = []string{}
	if activities != "" {
		if err := json.Unmarshal([]byte(activities), &e.Activities); err != nil {
			return mood.Entry{}, err
		}
	}
	e.Origin = mood.Origin(origin)
	if created != "" {
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return mood.Entry{}, err
		}
		e.Created = mood.Timestamp{Time: t}
	}
	return e, nil
}

func encodeActivities(activities []string) (string, error) {
	if activities == nil {
		activities = []string{}
	}
	b, err := json.Marshal(activities)
	if err != nil {
		return "", fmt.Errorf("failed to encode activities: %w", err)
	}
	return string(b), nil
}

func formatCreated(t mood.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
