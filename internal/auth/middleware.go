package auth

import (
	"context"
	"net/http"
)

// Principal is placed into the request context by the auth middleware.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, p)
}

// FromContext returns the authenticated principal, or nil for guests.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxUserKey{}).(*Principal)
	return p
}

// principal resolves the request's token to a still-existing user.
func (s *Service) principal(r *http.Request) (*Principal, error) {
	tok := s.TokenFrom(r)
	if tok == "" {
		return nil, ErrInvalidToken
	}
	id, username, err := s.ParseToken(tok)
	if err != nil {
		return nil, err
	}
	// Ensure user still exists
	if _, err := s.FindByID(r.Context(), id); err != nil {
		return nil, ErrInvalidToken
	}
	return &Principal{ID: id, Username: username}, nil
}

// Optional decorates requests with the principal when a valid token is
// present. It never rejects; used for routes guests may call.
func (s *Service) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p, err := s.principal(r); err == nil {
				r = r.WithContext(WithPrincipal(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require enforces a valid token and injects the principal.
func (s *Service) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.TokenFrom(r) == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			p, err := s.principal(r)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
