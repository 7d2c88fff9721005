// internal/game/types.go
//
// Core type definitions for a word-search game session.
// Defines:
//   - Mode: how the session's seed was chosen (free play or daily).
//   - Session: grid, vocabulary and player progress for one game.

package game

import (
	"time"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
)

// Mode labels how a session was created.
type Mode string

const (
	ModeFree  Mode = "free"
	ModeDaily Mode = "daily"
)

// Session holds the state of a single word-search game.
// A session is owned by one player; callers serialize access to it.
type Session struct {
	ID         string             // Unique game identifier (uuid).
	Mode       Mode               // free or daily.
	Owner      string             // User or anonymous id of the player; empty means anyone.
	Vocabulary []string           // Target words (uppercase), fixed for the session.
	Size       int                // Grid dimension N.
	Seed       uint64             // Seed the current grid was generated from.
	Grid       puzzle.Grid        // Generated grid; replaced only by Reset.
	Found      *puzzle.FoundWords // Words matched so far.
	Selection  []puzzle.Coord     // Cells picked since the last check, in click order.
	Checks     int                // Number of Check calls made.
	StartedAt  time.Time          // When the current grid was generated.
	FinishedAt time.Time          // Zero until every word is found.
	Stats      puzzle.Stats       // Cost of generating the current grid.
}

// Snapshot is the JSON view of a session sent to clients.
type Snapshot struct {
	GameID    string         `json:"gameId"`
	Mode      Mode           `json:"mode"`
	Size      int            `json:"size"`
	Grid      puzzle.Grid    `json:"grid"`
	Words     []string       `json:"words"`
	Found     []string       `json:"found"`
	Selection []puzzle.Coord `json:"selection"`
	State     string         `json:"state"` // "playing" | "complete"
}
