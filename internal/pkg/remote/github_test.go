package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubTestServer(t *testing.T, handler http.HandlerFunc) (*GitHubMirror, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	m := NewGitHubMirror(GitHubConfig{
		Token:   "secret-token",
		Owner:   "club",
		Repo:    "refdata",
		Branch:  "main",
		APIBase: srv.URL,
	})
	return m, srv
}

func TestGitHubRead_DecodesWrappedBase64(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("id,name\n1,Ana\n"))
	// The contents API wraps base64 at 60 columns
	wrapped := content[:8] + "\n" + content[8:]

	m, _ := newGitHubTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/club/refdata/contents/data/referees.csv", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		assert.Equal(t, "token secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "sha": "abc123"})
	})

	data, err := m.Read(context.Background(), "data/referees.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,Ana\n", string(data))
}

func TestGitHubRead_MissingFileIsErrNotFound(t *testing.T) {
	m, _ := newGitHubTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := m.Read(context.Background(), "data/referees.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGitHubRead_ServerErrorIsNotNotFound(t *testing.T) {
	m, _ := newGitHubTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := m.Read(context.Background(), "data/referees.csv")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGitHubWrite_CarriesShaForwardOnUpdate(t *testing.T) {
	var put putContentsRequest

	m, _ := newGitHubTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{"content": "", "sha": "existing-sha"})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	err := m.Write(context.Background(), "data/events.csv", []byte("event_id\n"), "Update events.csv via referee app")
	require.NoError(t, err)

	assert.Equal(t, "existing-sha", put.SHA)
	assert.Equal(t, "main", put.Branch)
	assert.Equal(t, "Update events.csv via referee app", put.Message)
	decoded, err := base64.StdEncoding.DecodeString(put.Content)
	require.NoError(t, err)
	assert.Equal(t, "event_id\n", string(decoded))
}

func TestGitHubWrite_OmitsShaForNewFile(t *testing.T) {
	var put putContentsRequest

	m, _ := newGitHubTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			w.WriteHeader(http.StatusCreated)
		}
	})

	err := m.Write(context.Background(), "data/events.csv", []byte("event_id\n"), "Update events.csv via referee app")
	require.NoError(t, err)
	assert.Empty(t, put.SHA)
}

func TestGitHubWrite_RejectedPutIsAnError(t *testing.T) {
	m, _ := newGitHubTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusConflict)
	})

	err := m.Write(context.Background(), "data/events.csv", []byte("x"), "msg")
	assert.Error(t, err)
}

func TestGitHubMirror_FillsConfigDefaults(t *testing.T) {
	m := NewGitHubMirror(GitHubConfig{Token: "t", Owner: "o", Repo: "r"})
	assert.Equal(t, "main", m.cfg.Branch)
	assert.Equal(t, "https://api.github.com", m.cfg.APIBase)
	assert.True(t, m.Enabled())
	assert.Equal(t, DriverGitHub, m.Driver())
}
