// internal/httpserver/routes_wordsearch.go
//
// HTTP routes for free-play word search.
// Exposes endpoints under /wordsearch:
//   - POST /wordsearch/new    → generate a new grid (optional fixed seed)
//   - GET  /wordsearch/{id}   → current snapshot of a game
//   - POST /wordsearch/select → toggle one cell in the selection
//   - POST /wordsearch/check  → verify the selection (or explicit cells)
//   - POST /wordsearch/reset  → regenerate the grid, clearing progress
//
// Sessions live in the store; every access goes through Server.update so a
// session is only touched by one request at a time, and only by its owner.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/store"
)

var (
	errDailyReset = errors.New("daily games cannot be reset")
	errDailyCheck = errors.New("daily games are checked via /daily/check")
	errNotOwner   = errors.New("game belongs to another player")
)

// mountWordSearch registers all /wordsearch routes.
func (s *Server) mountWordSearch(r chi.Router) {
	r.Route("/wordsearch", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Get("/{id}", s.handleGet)
		r.Post("/select", s.handleSelect)
		r.Post("/check", s.handleCheck)
		r.Post("/reset", s.handleReset)
	})
}

// decodeBody decodes a JSON body; an empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// newSession generates and stores a session owned by o, recording generation
// metrics.
func (s *Server) newSession(ctx context.Context, o owner, seed uint64, mode game.Mode) (*game.Session, error) {
	g, err := game.New(s.opts.Vocabulary, s.opts.Size, seed, game.Options{
		Mode:          mode,
		Owner:         o.id(),
		AttemptFactor: s.opts.AttemptFactor,
	})
	if err != nil {
		s.metrics.GenerationFailed()
		log.Error().Err(err).Uint64("seed", seed).Str("mode", string(mode)).Msg("generate grid")
		return nil, err
	}
	s.metrics.Generated(string(mode), g.Stats)
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// update runs fn on session id with exclusive access, provided o owns it.
func (s *Server) update(ctx context.Context, o owner, id string, fn func(*game.Session) error) error {
	return s.store.Update(ctx, id, func(g *game.Session) error {
		if !g.OwnedBy(o.userID, o.anonID) {
			return errNotOwner
		}
		return fn(g)
	})
}

// writeSessionErr maps session/store errors onto HTTP responses.
// Another player's game reads as missing so game IDs do not leak.
func writeSessionErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, errNotOwner):
		writeErr(w, http.StatusNotFound, "game not found")
	case errors.Is(err, game.ErrOutOfRange):
		writeErr(w, http.StatusBadRequest, "cell out of range")
	case errors.Is(err, errDailyReset), errors.Is(err, errDailyCheck):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, puzzle.ErrConfiguration):
		writeErr(w, http.StatusInternalServerError, "configuration_error")
	default:
		writeErr(w, http.StatusInternalServerError, "server error")
	}
}

// -----------------------------------------------------------------------------
// /wordsearch/new

// newReq is the optional body for /wordsearch/new.
type newReq struct {
	Seed *uint64 `json:"seed,omitempty"` // fixed seed for reproducible grids
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var p newReq
	if err := decodeBody(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "bad request")
		return
	}
	seed := game.RandomSeed()
	if p.Seed != nil {
		seed = *p.Seed
	}

	o := s.ownerOf(w, r)
	g, err := s.newSession(r.Context(), o, seed, game.ModeFree)
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	s.insertGameRow(r.Context(), g, o)
	writeJSON(w, g.Snapshot())
}

// -----------------------------------------------------------------------------
// /wordsearch/{id}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.update(r.Context(), s.ownerOf(w, r), chi.URLParam(r, "id"), func(g *game.Session) error {
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	writeJSON(w, snap)
}

// -----------------------------------------------------------------------------
// /wordsearch/select

type selectReq struct {
	GameID string `json:"gameId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type selectRes struct {
	GameID    string         `json:"gameId"`
	Selection []puzzle.Coord `json:"selection"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var p selectReq
	if err := decodeBody(r, &p); err != nil || p.GameID == "" {
		writeErr(w, http.StatusBadRequest, "bad request")
		return
	}
	res := selectRes{GameID: p.GameID, Selection: []puzzle.Coord{}}
	err := s.update(r.Context(), s.ownerOf(w, r), p.GameID, func(g *game.Session) error {
		if _, err := g.Toggle(puzzle.Coord{Row: p.Row, Col: p.Col}); err != nil {
			return err
		}
		res.Selection = g.Snapshot().Selection
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	writeJSON(w, res)
}

// -----------------------------------------------------------------------------
// /wordsearch/check

// checkReq verifies Cells when given, otherwise the session's selection.
type checkReq struct {
	GameID string         `json:"gameId"`
	Cells  []puzzle.Coord `json:"cells,omitempty"`
}

type checkRes struct {
	puzzle.VerifyResult
	GameID string   `json:"gameId"`
	Found  []string `json:"found"`
	Checks int      `json:"checks"`
	State  string   `json:"state"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var p checkReq
	if err := decodeBody(r, &p); err != nil || p.GameID == "" {
		writeErr(w, http.StatusBadRequest, "bad request")
		return
	}
	res, err := s.check(r.Context(), s.ownerOf(w, r), p, func(g *game.Session) error {
		if g.Mode == game.ModeDaily {
			return errDailyCheck
		}
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	writeJSON(w, res)
}

// check runs a verification under the session lock and records the outcome.
// guard, when set, may reject the session before it is touched.
func (s *Server) check(ctx context.Context, o owner, p checkReq, guard func(*game.Session) error) (checkRes, error) {
	var (
		res checkRes
		out checkOutcome
	)
	err := s.update(ctx, o, p.GameID, func(g *game.Session) error {
		if guard != nil {
			if err := guard(g); err != nil {
				return err
			}
		}
		v := g.Check(p.Cells)
		res = checkRes{
			VerifyResult: v,
			GameID:       g.ID,
			Found:        g.Found.Words(),
			Checks:       g.Checks,
			State:        g.State(),
		}
		out = checkOutcome{
			ID:            g.ID,
			Mode:          g.Mode,
			Found:         g.Found.Len(),
			Checks:        g.Checks,
			Words:         len(g.Vocabulary),
			StartedAt:     g.StartedAt,
			Elapsed:       g.Elapsed(),
			JustCompleted: v.Outcome == puzzle.Matched && g.Complete(),
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	s.metrics.Verified(res.Outcome)
	s.recordCheck(ctx, o, out)
	return res, nil
}

// -----------------------------------------------------------------------------
// /wordsearch/reset

type resetReq struct {
	GameID string  `json:"gameId"`
	Seed   *uint64 `json:"seed,omitempty"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var p resetReq
	if err := decodeBody(r, &p); err != nil || p.GameID == "" {
		writeErr(w, http.StatusBadRequest, "bad request")
		return
	}
	seed := game.RandomSeed()
	if p.Seed != nil {
		seed = *p.Seed
	}

	var (
		snap    game.Snapshot
		started time.Time
	)
	o := s.ownerOf(w, r)
	err := s.update(r.Context(), o, p.GameID, func(g *game.Session) error {
		if g.Mode == game.ModeDaily {
			return errDailyReset
		}
		if err := g.Reset(seed, s.opts.AttemptFactor); err != nil {
			s.metrics.GenerationFailed()
			return err
		}
		s.metrics.Generated(string(g.Mode), g.Stats)
		snap = g.Snapshot()
		started = g.StartedAt
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	s.resetGameRow(r.Context(), o, snap.GameID, seed, started)
	writeJSON(w, snap)
}
