// internal/httpserver/routes_auth.go
//
// Account and profile endpoints:
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /progress/mine, /games/mine (require auth)
//
// Signup and login attach any games played under the anonymous cookie to
// the account.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
)

// credentialsReq is the body for signup/login.
type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	gated := s.r.With(s.auth.Require())
	gated.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, auth.FromContext(r.Context()))
	})
	gated.Get("/stats/me", s.handleStats)
	gated.Get("/progress/mine", s.handleProgress)
	gated.Get("/games/mine", s.handleGames)
}

// handleSignup creates a new user, signs a JWT, sets auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := decodeBody(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.auth.CreateUser(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeErr(w, http.StatusConflict, "Username taken")
		return
	case errors.Is(err, auth.ErrInvalidSignup):
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("create user")
		writeErr(w, http.StatusInternalServerError, "server error")
		return
	}
	if !s.issueToken(w, u) {
		return
	}
	s.claimAnonGames(r.Context(), s.auth.EnsureAnonID(w, r), u.ID)
	writeJSON(w, map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates user, sets cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := decodeBody(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.auth.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.issueToken(w, u) {
		return
	}
	s.claimAnonGames(r.Context(), s.auth.EnsureAnonID(w, r), u.ID)
	writeJSON(w, map[string]any{"id": u.ID, "username": u.Username})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.ClearCookie(w)
	writeJSON(w, map[string]bool{"ok": true})
}

// issueToken signs a JWT for u and sets the auth cookie.
func (s *Server) issueToken(w http.ResponseWriter, u *auth.User) bool {
	tok, exp, err := s.auth.SignToken(u.ID, u.Username)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.auth.SetCookie(w, tok, exp)
	return true
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	u, err := s.auth.FindByID(r.Context(), me.ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "not_found")
		return
	}
	writeJSON(w, map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"completed":   u.Completed,
	})
}

// handleProgress lists the caller's completion history, newest first.
// ?limit=n caps the result (default 50).
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.progress.ListByUser(r.Context(), me.ID, limit)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, entries)
}

// gameRow is one line of /games/mine.
type gameRow struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Status     string `json:"status"`
	Found      int    `json:"found"`
	Words      int    `json:"words"`
	Checks     int    `json:"checks"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// handleGames lists the caller's 50 most recent games.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	rows, err := s.db.QueryContext(r.Context(),
		`SELECT id, mode, status, found, words, checks, started_at, COALESCE(finished_at,'')
		 FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT 50`, me.ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	defer rows.Close()

	out := []gameRow{}
	for rows.Next() {
		var gr gameRow
		if err := rows.Scan(&gr.ID, &gr.Mode, &gr.Status, &gr.Found, &gr.Words, &gr.Checks, &gr.StartedAt, &gr.FinishedAt); err != nil {
			log.Error().Err(err).Str("user", me.ID).Msg("scan game row")
			writeErr(w, http.StatusInternalServerError, "db_error")
			return
		}
		out = append(out, gr)
	}
	if err := rows.Err(); err != nil {
		log.Error().Err(err).Str("user", me.ID).Msg("list games")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, out)
}
