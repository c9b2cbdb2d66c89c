package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/light-bringer/invcat-service/internal/app/session"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

// SessionManager signs session tokens in and out.
type SessionManager interface {
	SignIn(ctx context.Context, token string) error
	SignOut(ctx context.Context, token string) error
}

// SessionsHandler serves POST and DELETE /api/v1/sessions. The token issued by
// the auth service travels in the Authorization header.
type SessionsHandler struct {
	sessions SessionManager
}

// NewSessionsHandler creates a new HTTP sessions handler.
func NewSessionsHandler(sessions SessionManager) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// ServeHTTP handles POST (sign in) and DELETE (sign out) requests.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var err error
	switch r.Method {
	case http.MethodPost:
		err = h.sessions.SignIn(r.Context(), token)
	case http.MethodDelete:
		err = h.sessions.SignOut(r.Context(), token)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, session.ErrTokenExpired), errors.Is(err, session.ErrEmptyToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		logx.Error().Err(err).Str("method", r.Method).Msg("session request failed")
		writeError(w, http.StatusServiceUnavailable, "session store unavailable")
	}
}

func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
