// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - POST /daily/check       → verify a selection in today's puzzle
//   - GET  /daily/leaderboard → top 20 results for today (or a given date)
//
// Every player gets the same grid for a date: the seed is derived from the
// date and a server-side salt. Each player records one result per day.
// Selection toggling goes through /wordsearch/select like any other session.

package httpserver

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/daily"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
)

var errNoDailySession = errors.New("no daily session")

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	sessions map[string]string // userID|date -> game ID
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		sessions: make(map[string]string),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/check", dd.handleCheck)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the current date key and that day's seed.
func (d *dailyServer) today() (string, uint64) {
	now := d.srv.now().UTC()
	return daily.DateKey(now), daily.Seed(now, d.srv.opts.DailySalt)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new. Game is omitted once played.
type dailyNewRes struct {
	Date   string         `json:"date"`
	Played bool           `json:"played"`
	Game   *game.Snapshot `json:"game,omitempty"`
}

// handleNew creates or reuses today's session for the player.
// - If the player already has a result for today → Played=true, and the
//   finished session is evicted from the store.
// - Otherwise return the live session, generating it on first call.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	o := d.srv.ownerOf(w, r)
	date, seed := d.today()
	key := o.id() + "|" + date

	played, err := d.srv.daily.AlreadyPlayed(r.Context(), o.id(), date)
	if err != nil {
		// Serve a grid anyway; a second result for the day is ignored on insert.
		log.Warn().Err(err).Str("player", o.id()).Str("date", date).Msg("daily already-played lookup")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if played {
		if id, ok := d.sessions[key]; ok {
			delete(d.sessions, key)
			if err := d.srv.store.Delete(r.Context(), id); err != nil {
				log.Warn().Err(err).Str("gameId", id).Msg("evict finished daily session")
			}
		}
		writeJSON(w, dailyNewRes{Date: date, Played: true})
		return
	}

	if id, ok := d.sessions[key]; ok {
		var snap game.Snapshot
		err := d.srv.update(r.Context(), o, id, func(g *game.Session) error {
			snap = g.Snapshot()
			return nil
		})
		if err == nil {
			writeJSON(w, dailyNewRes{Date: date, Game: &snap})
			return
		}
		delete(d.sessions, key)
	}

	g, err := d.srv.newSession(r.Context(), o, seed, game.ModeDaily)
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	d.sessions[key] = g.ID
	d.srv.insertGameRow(r.Context(), g, o)

	snap := g.Snapshot()
	writeJSON(w, dailyNewRes{Date: date, Game: &snap})
}

// -----------------------------------------------------------------------------
// /daily/check

// dailyCheckRes adds the date to a regular check result.
type dailyCheckRes struct {
	checkRes
	Date string `json:"date"`
}

// handleCheck verifies a selection in the player's daily session.
// The result row is written by the shared completion path.
func (d *dailyServer) handleCheck(w http.ResponseWriter, r *http.Request) {
	var p checkReq
	if err := decodeBody(r, &p); err != nil || p.GameID == "" {
		writeErr(w, http.StatusBadRequest, "bad request")
		return
	}
	o := d.srv.ownerOf(w, r)
	date, _ := d.today()

	d.mu.Lock()
	id, ok := d.sessions[o.id()+"|"+date]
	d.mu.Unlock()
	if !ok || id != p.GameID {
		writeErr(w, http.StatusConflict, errNoDailySession.Error())
		return
	}

	res, err := d.srv.check(r.Context(), o, p, func(g *game.Session) error {
		if g.Mode != game.ModeDaily {
			return errNoDailySession
		}
		return nil
	})
	if errors.Is(err, errNoDailySession) {
		writeErr(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	writeJSON(w, dailyCheckRes{checkRes: res, Date: date})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, lbRes{Date: date, Top: rows})
}
