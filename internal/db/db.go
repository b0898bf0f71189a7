package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
-- Submitted mood entries; rows are never updated
CREATE TABLE IF NOT EXISTS mood_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    actor TEXT NOT NULL,
    mood TEXT NOT NULL,
    sleep_hours TEXT NOT NULL,
    journal_entry TEXT NOT NULL,
    sentiment TEXT NOT NULL,
    burnout_score INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mood_actor_created ON mood_records(actor, created_at DESC);
`

type DB struct {
	conn *sql.DB

	mu       sync.Mutex
	watchers map[chan struct{}]struct{}
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn, watchers: make(map[chan struct{}]struct{})}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(schema)
	if err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the database connection
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// MoodRecord is a stored mood submission
type MoodRecord struct {
	ID           int64     `json:"id"`
	Actor        string    `json:"-"`
	Mood         string    `json:"mood"`
	SleepHours   string    `json:"sleep_hours"`
	JournalEntry string    `json:"journal_entry"`
	Sentiment    string    `json:"sentiment"`
	BurnoutScore int       `json:"burnout_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// InsertMood stores a record and returns it with ID and CreatedAt set.
// A zero CreatedAt is replaced with the current time.
func (db *DB) InsertMood(ctx context.Context, rec MoodRecord) (MoodRecord, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO mood_records (actor, mood, sleep_hours, journal_entry, sentiment, burnout_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.Actor, rec.Mood, rec.SleepHours, rec.JournalEntry, rec.Sentiment, rec.BurnoutScore, rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return MoodRecord{}, fmt.Errorf("inserting mood record: %w", err)
	}

	rec.ID, err = result.LastInsertId()
	if err != nil {
		return MoodRecord{}, fmt.Errorf("reading mood record id: %w", err)
	}

	db.notify()
	return rec, nil
}

// ListMoods returns an actor's records, most recent first
func (db *DB) ListMoods(ctx context.Context, actor string) ([]MoodRecord, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, actor, mood, sleep_hours, journal_entry, sentiment, burnout_score, created_at
		FROM mood_records
		WHERE actor = ?
		ORDER BY created_at DESC, id DESC
	`, actor)
	if err != nil {
		return nil, fmt.Errorf("querying mood records: %w", err)
	}
	defer rows.Close()

	records := []MoodRecord{}
	for rows.Next() {
		var r MoodRecord
		var createdStr string
		if err := rows.Scan(&r.ID, &r.Actor, &r.Mood, &r.SleepHours, &r.JournalEntry, &r.Sentiment, &r.BurnoutScore, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning mood record: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of mood record %d: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ClearMoods deletes all of an actor's records in a single statement and
// returns how many were removed
func (db *DB) ClearMoods(ctx context.Context, actor string) (int64, error) {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM mood_records WHERE actor = ?`, actor)
	if err != nil {
		return 0, fmt.Errorf("clearing mood records: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	db.notify()
	return n, nil
}

// CountMoods returns the number of stored records across all actors
func (db *DB) CountMoods(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM mood_records`).Scan(&n)
	return n, err
}
