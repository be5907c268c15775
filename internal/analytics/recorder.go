package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"course-studio/internal/logger"
)

// Recorder captures events in a local sqlite database so recent interactions
// can be replayed on the handoff surface. Capture is best effort: a failed
// insert is logged and dropped, never surfaced to the caller.
type Recorder struct {
	db  *sql.DB
	log *logger.Logger
}

// RecordedEvent is one captured analytics event.
type RecordedEvent struct {
	ID         int64           `json:"id"`
	Event      string          `json:"event"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

func NewRecorder(path string, log *logger.Logger) (*Recorder, error) {
	if strings.TrimSpace(path) == "" {
		path = "studio-events.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	recorder := &Recorder{db: db, log: log}
	if err := recorder.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return recorder, nil
}

func (r *Recorder) initSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event TEXT NOT NULL,
			payload TEXT,
			recorded_at TIMESTAMP NOT NULL
		);
	`)
	return err
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

// Track implements Tracker.
func (r *Recorder) Track(event string, payload map[string]any) {
	var encoded []byte
	if len(payload) > 0 {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			encoded = nil
		}
	}

	_, err := r.db.Exec(
		`INSERT INTO events (event, payload, recorded_at) VALUES (?, ?, ?)`,
		event, string(encoded), time.Now().UTC(),
	)
	if err != nil && r.log != nil {
		r.log.Warn("dropping analytics event", "event", event, "error", err)
	}
}

// Recent returns the most recently captured events, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]RecordedEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event, payload, recorded_at
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]RecordedEvent, 0, limit)
	for rows.Next() {
		var item RecordedEvent
		var payload sql.NullString
		if err := rows.Scan(&item.ID, &item.Event, &payload, &item.RecordedAt); err != nil {
			return nil, err
		}
		if payload.Valid && payload.String != "" {
			item.Payload = json.RawMessage(payload.String)
		}
		events = append(events, item)
	}
	return events, rows.Err()
}
