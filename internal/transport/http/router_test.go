package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/invcat-service/internal/app/session"
)

type fakeViews struct {
	views map[string]map[string]any
}

func (f *fakeViews) GetView(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["view_id"].GetStringValue()
	v, ok := f.views[id]
	if !ok {
		return nil, status.Error(codes.NotFound, "view not found")
	}
	return structpb.NewStruct(v)
}

type fakeSessions struct {
	signedIn  []string
	signedOut []string
	err       error
}

func (f *fakeSessions) SignIn(_ context.Context, token string) error {
	if f.err != nil {
		return f.err
	}
	f.signedIn = append(f.signedIn, token)
	return nil
}

func (f *fakeSessions) SignOut(_ context.Context, token string) error {
	if f.err != nil {
		return f.err
	}
	f.signedOut = append(f.signedOut, token)
	return nil
}

type staticAuth map[string]bool

func (a staticAuth) Authenticated(_ context.Context, token string) (bool, error) {
	return a[token], nil
}

func newViews() *fakeViews {
	return &fakeViews{views: map[string]map[string]any{
		"v1": {
			"view_id":     "v1",
			"status":      "ready",
			"page_index":  1,
			"total_count": 30,
			"items":       []any{map[string]any{"id": 1, "title": "Remote Item 01"}},
		},
	}}
}

func serve(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_GetView(t *testing.T) {
	router := NewRouter(RouterOptions{Views: newViews()})

	t.Run("returns the view document", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/api/v1/views/v1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "v1", body["view_id"])
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, float64(30), body["total_count"])
		assert.Len(t, body["items"], 1)
	})

	t.Run("unknown view is 404", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/api/v1/views/missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("other methods are rejected", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/api/v1/views/v1", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestRouter_GetView_RequiresSession(t *testing.T) {
	router := NewRouter(RouterOptions{Views: newViews(), Auth: staticAuth{"live": true}})

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/api/v1/views/v1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/api/v1/views/v1", "stale").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/views/v1", "live").Code)
}

func TestRouter_Sessions(t *testing.T) {
	t.Run("sign in and out", func(t *testing.T) {
		sessions := &fakeSessions{}
		router := NewRouter(RouterOptions{Views: newViews(), Sessions: sessions})

		assert.Equal(t, http.StatusNoContent, serve(router, http.MethodPost, "/api/v1/sessions", "tok").Code)
		assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/api/v1/sessions", "tok").Code)
		assert.Equal(t, []string{"tok"}, sessions.signedIn)
		assert.Equal(t, []string{"tok"}, sessions.signedOut)
	})

	t.Run("missing token", func(t *testing.T) {
		router := NewRouter(RouterOptions{Views: newViews(), Sessions: &fakeSessions{}})
		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/api/v1/sessions", "").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		router := NewRouter(RouterOptions{Views: newViews(), Sessions: &fakeSessions{err: session.ErrTokenExpired}})
		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/api/v1/sessions", "old").Code)
	})

	t.Run("store failure", func(t *testing.T) {
		router := NewRouter(RouterOptions{Views: newViews(), Sessions: &fakeSessions{err: errors.New("dial tcp: refused")}})
		assert.Equal(t, http.StatusServiceUnavailable, serve(router, http.MethodPost, "/api/v1/sessions", "tok").Code)
	})

	t.Run("routes absent without a session manager", func(t *testing.T) {
		router := NewRouter(RouterOptions{Views: newViews()})
		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/api/v1/sessions", "tok").Code)
	})
}

func TestRouter_Healthz(t *testing.T) {
	rec := serve(NewRouter(RouterOptions{Views: newViews()}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
