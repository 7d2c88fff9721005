// Package progress persists completed-game events per user.
//
// One row is written each time a player finishes a puzzle. Rows are
// append-only; a player's history is read newest first.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// GameTypeWordSearch labels word-search completions.
const GameTypeWordSearch = "wordsearch"

// timeLayout is fixed-width so completed_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one completion event.
type Entry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	GameType        string    `json:"gameType"`
	CelestialObject string    `json:"celestialObject,omitempty"`
	Score           string    `json:"score,omitempty"`
	CompletedAt     time.Time `json:"completedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Save inserts e, filling ID and CompletedAt when unset.
func (s *Store) Save(ctx context.Context, e *Entry) error {
	if e.UserID == "" || e.GameType == "" {
		return errors.New("progress: user and game type are required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CompletedAt.IsZero() {
		e.CompletedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_progress (id, user_id, game_type, celestial_object, score, completed_at)
		 VALUES (?,?,?,?,?,?)`,
		e.ID, e.UserID, e.GameType, nullable(e.CelestialObject), nullable(e.Score),
		e.CompletedAt.UTC().Format(timeLayout),
	)
	return err
}

// ListByUser returns the user's entries, newest first. limit ≤ 0 means 50.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, game_type, COALESCE(celestial_object,''), COALESCE(score,''), completed_at
		 FROM game_progress
		 WHERE user_id=?
		 ORDER BY completed_at DESC
		 LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var completed string
		if err := rows.Scan(&e.ID, &e.UserID, &e.GameType, &e.CelestialObject, &e.Score, &completed); err != nil {
			return nil, err
		}
		e.CompletedAt, _ = time.Parse(timeLayout, completed)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
