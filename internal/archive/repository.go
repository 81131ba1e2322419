// Package archive records concluded matches into postgres. The archive is a
// local convenience (match history across client runs); the session core
// works unchanged without it.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/kapu/tictac-client/internal/session"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// EnsureSchema creates the matches table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if r == nil || r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS matches (
		id          BIGSERIAL PRIMARY KEY,
		client_id   TEXT NOT NULL,
		room        TEXT NOT NULL,
		local_role  TEXT NOT NULL,
		observer    BOOLEAN NOT NULL,
		outcome     TEXT NOT NULL,
		moves       JSONB NOT NULL,
		started_at  TIMESTAMPTZ,
		duration_ms BIGINT NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

// RecordResult inserts one finished match. Implements session.Recorder.
func (r *Repository) RecordResult(ctx context.Context, rec session.MatchRecord) error {
	if r == nil || r.db == nil {
		return nil
	}
	args, err := buildRow(rec)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertMatchSQL, args...)
	return err
}

const insertMatchSQL = `INSERT INTO matches (
    client_id, room, local_role, observer, outcome, moves,
    started_at, duration_ms
  ) VALUES (
    $1,$2,$3,$4,$5,$6,$7,$8
  )`

// buildRow derives the insert arguments for one match record.
func buildRow(rec session.MatchRecord) ([]any, error) {
	movesRaw, err := json.Marshal(rec.Moves)
	if err != nil {
		return nil, fmt.Errorf("marshal moves: %w", err)
	}
	duration := rec.Duration.Milliseconds()
	if duration < 0 {
		duration = 0
	}
	var startedAt any
	if !rec.StartedAt.IsZero() {
		startedAt = rec.StartedAt
	}
	return []any{
		strings.TrimSpace(rec.ClientID),
		strings.TrimSpace(rec.Room),
		string(rec.LocalRole),
		rec.Observer,
		strings.TrimSpace(rec.Outcome),
		string(movesRaw),
		startedAt,
		duration,
	}, nil
}

// RecentMatches returns up to limit most recent archived matches.
func (r *Repository) RecentMatches(ctx context.Context, limit int) ([]session.MatchRecord, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `SELECT client_id, room, local_role, observer,
		outcome, moves, started_at, duration_ms
		FROM matches ORDER BY recorded_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []session.MatchRecord
	for rows.Next() {
		var rec session.MatchRecord
		var role string
		var movesRaw []byte
		var startedAt sql.NullTime
		var durationMS int64
		if err := rows.Scan(&rec.ClientID, &rec.Room, &role, &rec.Observer,
			&rec.Outcome, &movesRaw, &startedAt, &durationMS); err != nil {
			return nil, err
		}
		rec.LocalRole = session.Role(role)
		if err := json.Unmarshal(movesRaw, &rec.Moves); err != nil {
			return nil, fmt.Errorf("unmarshal moves: %w", err)
		}
		if startedAt.Valid {
			rec.StartedAt = startedAt.Time
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}
