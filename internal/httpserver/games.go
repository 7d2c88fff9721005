// internal/httpserver/games.go
//
// Database bookkeeping for word-search sessions.
// The in-memory store holds live play; the games table keeps a durable
// history row per session for stats and "my games".

package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/daily"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/progress"
)

// owner identifies who a game row belongs to.
type owner struct {
	userID string // empty for guests
	anonID string // anon cookie; kept after signup so pre-signup games stay playable
}

// ownerClause restricts a games UPDATE to rows the player owns.
const ownerClause = `(user_id = ? OR anonymous_id = ?)`

func (o owner) args() []any { return []any{nullStr(o.userID), nullStr(o.anonID)} }

// id is the identifier used for daily results.
func (o owner) id() string {
	if o.userID != "" {
		return o.userID
	}
	return o.anonID
}

// checkOutcome is copied out of a session under its lock.
type checkOutcome struct {
	ID            string
	Mode          game.Mode
	Found         int
	Checks        int
	Words         int
	StartedAt     time.Time
	Elapsed       time.Duration
	JustCompleted bool
}

func nullStr(s string) sql.NullString { return sql.NullString{String: s, Valid: s != ""} }

// insertGameRow persists an owner row for a new session (best effort).
func (s *Server) insertGameRow(ctx context.Context, g *game.Session, o owner) {
	anon := o.anonID
	if o.userID != "" {
		anon = ""
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, user_id, anonymous_id, mode, seed, size, words, started_at, status)
		VALUES (?,?,?,?,?,?,?,?, 'playing')`,
		g.ID, nullStr(o.userID), nullStr(anon), string(g.Mode),
		strconv.FormatUint(g.Seed, 10), g.Size, len(g.Vocabulary),
		g.StartedAt.Format(time.RFC3339),
	)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
		return
	}
	if o.userID != "" {
		if err := s.auth.BumpStats(ctx, o.userID, 1, 0); err != nil {
			log.Warn().Err(err).Str("user", o.userID).Msg("bump games played")
		}
	}
}

// resetGameRow rewinds a game row after Reset (best effort).
func (s *Server) resetGameRow(ctx context.Context, o owner, id string, seed uint64, startedAt time.Time) {
	args := append([]any{strconv.FormatUint(seed, 10), startedAt.Format(time.RFC3339), id}, o.args()...)
	_, err := s.db.ExecContext(ctx, `
		UPDATE games SET seed=?, found=0, checks=0, status='playing', started_at=?, finished_at=NULL
		WHERE id=? AND `+ownerClause, args...)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("reset game row")
	}
}

// recordCheck updates counters and, on completion, writes the completion
// events: game status, user stats, progress row and daily result.
func (s *Server) recordCheck(ctx context.Context, o owner, c checkOutcome) {
	if _, err := s.db.ExecContext(ctx, `UPDATE games SET found=?, checks=? WHERE id=? AND `+ownerClause,
		append([]any{c.Found, c.Checks, c.ID}, o.args()...)...); err != nil {
		log.Warn().Err(err).Str("gameId", c.ID).Msg("update game row")
	}
	if !c.JustCompleted {
		return
	}

	s.metrics.Completed(string(c.Mode))
	log.Info().Str("gameId", c.ID).Str("mode", string(c.Mode)).
		Int("words", c.Words).Int("checks", c.Checks).Dur("elapsed", c.Elapsed).Msg("puzzle complete")

	if _, err := s.db.ExecContext(ctx, `UPDATE games SET status='complete', finished_at=? WHERE id=? AND `+ownerClause,
		append([]any{s.now().UTC().Format(time.RFC3339), c.ID}, o.args()...)...); err != nil {
		log.Warn().Err(err).Str("gameId", c.ID).Msg("finish game row")
	}

	if o.userID != "" {
		if err := s.auth.BumpStats(ctx, o.userID, 0, 1); err != nil {
			log.Warn().Err(err).Str("user", o.userID).Msg("bump completed")
		}
		if err := s.progress.Save(ctx, &progress.Entry{
			UserID:   o.userID,
			GameType: progress.GameTypeWordSearch,
			Score:    strconv.Itoa(c.Found),
		}); err != nil {
			log.Warn().Err(err).Str("user", o.userID).Msg("save progress")
		}
	}

	if c.Mode == game.ModeDaily {
		if err := s.daily.InsertResult(ctx, daily.Result{
			UserID:    o.id(),
			Date:      daily.DateKey(c.StartedAt),
			Checks:    c.Checks,
			ElapsedMs: c.Elapsed.Milliseconds(),
		}); err != nil {
			log.Warn().Err(err).Str("gameId", c.ID).Msg("insert daily result")
		}
	}
}

// claimAnonGames transfers a guest's games to a user account after auth.
func (s *Server) claimAnonGames(ctx context.Context, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Msg("claim anon games")
	}
}

// ownerOf resolves the request's player, issuing an anon cookie to guests.
// Signed-in players keep any anon cookie they played under before signup.
func (s *Server) ownerOf(w http.ResponseWriter, r *http.Request) owner {
	if p := auth.FromContext(r.Context()); p != nil {
		return owner{userID: p.ID, anonID: s.auth.AnonID(r)}
	}
	return owner{anonID: s.auth.EnsureAnonID(w, r)}
}
