package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

// Authenticator answers whether a session token is signed in.
type Authenticator interface {
	Authenticated(ctx context.Context, token string) (bool, error)
}

// RouterOptions holds the handlers' collaborators. A nil Auth disables the
// session check on view routes; a nil Sessions leaves the session routes out.
type RouterOptions struct {
	Views    ViewReader
	Sessions SessionManager
	Auth     Authenticator
}

// NewRouter builds the HTTP surface of the service.
func NewRouter(opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var views http.Handler = NewViewsHandler(opts.Views)
	if opts.Auth != nil {
		views = requireSession(opts.Auth, views)
	}
	mux.Handle("GET /api/v1/views/{id}", views)

	if opts.Sessions != nil {
		sessions := NewSessionsHandler(opts.Sessions)
		mux.Handle("POST /api/v1/sessions", sessions)
		mux.Handle("DELETE /api/v1/sessions", sessions)
	}

	return mux
}

func requireSession(auth Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		ok, err := auth.Authenticated(r.Context(), token)
		if err != nil {
			logx.Error().Err(err).Str("path", r.URL.Path).Msg("session lookup failed")
			writeError(w, http.StatusServiceUnavailable, "session store unavailable")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "session expired or signed out")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Debug().Err(err).Msg("failed to encode response")
	}
}
