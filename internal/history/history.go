// Package history provides SQLite-based persistence for chat exchanges.
// The schema is created on open if it does not exist.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Store persists chat exchanges. It is safe for concurrent use; SQLite
// serializes writers and the busy timeout covers contention.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// chats table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("open chat db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS chats (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp TEXT NOT NULL,
        user_message TEXT NOT NULL,
        bot_reply TEXT NOT NULL
    );`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create chats table: %w", err)
	}
	return &Store{db: db}, nil
}

// Append stores one exchange, stamping it with the current UTC time in
// RFC 3339 form.
func (s *Store) Append(ctx context.Context, userMessage, botReply string) error {
	ts := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (timestamp, user_message, bot_reply) VALUES (?, ?, ?);`,
		ts, userMessage, botReply); err != nil {
		return fmt.Errorf("append chat record: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, newest id first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, user_message, bot_reply FROM chats ORDER BY id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat records: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.UserMessage, &r.BotReply); err != nil {
			return nil, fmt.Errorf("scan chat record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
