package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"math-roulette/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGistStore(t *testing.T, handler http.HandlerFunc, gistID string) *GistStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGistStore(GistOptions{
		BaseURL:  srv.URL,
		Token:    "gh-token",
		GistID:   gistID,
		Filename: "gamestate.json",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
}

func TestGistStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes the state file", func(t *testing.T) {
		s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/gists/abc123", r.URL.Path)
			assert.Equal(t, "token gh-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":"abc123","files":{"gamestate.json":{"content":"{\"participants\":[{\"name\":\"Ana\"}],\"gameState\":{\"status\":\"active\"},\"topic\":\"fractions\"}"}}}`))
		}, "abc123")

		doc, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusActive, doc.GameState.Status)
		assert.Equal(t, "fractions", doc.Topic)
		require.Len(t, doc.Participants, 1)
		assert.JSONEq(t, `{"name":"Ana"}`, string(doc.Participants[0]))
	})

	t.Run("Missing file", func(t *testing.T) {
		s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"abc123","files":{"other.json":{"content":"{}"}}}`))
		}, "abc123")

		_, err := s.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Upstream status error", func(t *testing.T) {
		s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}, "abc123")

		_, err := s.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})

	t.Run("Unconfigured", func(t *testing.T) {
		s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request %s", r.URL.Path)
		}, "")

		assert.False(t, s.Configured())
		_, err := s.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrStoreNotConfigured)
	})
}

func TestGistStore_EnsureExists(t *testing.T) {
	ctx := context.Background()

	t.Run("Provisions once with the default document", func(t *testing.T) {
		var posts atomic.Int32
		s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/gists", r.URL.Path)
			posts.Add(1)

			var payload gistPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.NotNil(t, payload.Public)
			assert.False(t, *payload.Public)
			assert.JSONEq(t, `{"participants":[],"gameState":{"status":"waiting"}}`, payload.Files["gamestate.json"].Content)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"new-gist"}`))
		}, "")

		id, err := s.EnsureExists(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new-gist", id)

		id, err = s.EnsureExists(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new-gist", id)
		assert.Equal(t, int32(1), posts.Load())
		assert.True(t, s.Configured())
	})

	t.Run("Known id skips the API", func(t *testing.T) {
		s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request %s", r.URL.Path)
		}, "abc123")

		id, err := s.EnsureExists(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc123", id)
	})

	t.Run("Creation failure", func(t *testing.T) {
		s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, "")

		_, err := s.EnsureExists(ctx)
		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.False(t, s.Configured())
	})
}

func TestGistStore_Save(t *testing.T) {
	ctx := context.Background()

	var body map[string]map[string]gistFile
	s := newTestGistStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/gists/abc123", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"id":"abc123"}`))
	}, "abc123")

	doc := domain.DefaultDocument()
	doc.GameState.Status = domain.StatusEnded
	require.NoError(t, s.Save(ctx, doc, ""))

	content := body["files"]["gamestate.json"].Content
	assert.JSONEq(t, `{"participants":[],"gameState":{"status":"ended"}}`, content)
	assert.Contains(t, content, "\n  \"gameState\"", "document is stored with 2-space indentation")
}
