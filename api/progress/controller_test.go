package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/circuit-maze/api/identity"
	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var playerID = uuid.MustParse("5b1f4a9e-2c61-4d7e-9f3a-0d8e6c2b7a41")

type stubTokenizer struct{}

func (stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "", errors.New("not used")
}

func (stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "valid" {
		return nil, errors.New("invalid token")
	}
	return map[string]interface{}{"userID": playerID.String(), "username": "volta"}, nil
}

type completion struct {
	player    uuid.UUID
	username  string
	level     int
	score     int
	questions int
}

type fakeTracker struct {
	completions []completion
	limit       int64
	err         error
}

func (f *fakeTracker) Progress(_ context.Context, id uuid.UUID) (*dmn.Progress, error) {
	if f.err != nil {
		return nil, f.err
	}
	return dmn.NewProgress(id, 1), nil
}

func (f *fakeTracker) Complete(_ context.Context, id uuid.UUID, username string, lvl, score, questions int) (*dmn.Progress, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.completions = append(f.completions, completion{id, username, lvl, score, questions})
	p := dmn.NewProgress(id, 1)
	_, err := p.Complete(lvl, level.LastLevel, score, questions, time.Now())
	return p, err
}

func (f *fakeTracker) Leaderboard(_ context.Context, lvl int, limit int64) ([]i.LeaderboardEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if lvl > level.LastLevel {
		return nil, level.ErrUnknownLevel
	}
	f.limit = limit
	return []i.LeaderboardEntry{{Member: "volta", Score: 450}}, nil
}

func newTestRouter(t *testing.T, tracker *fakeTracker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := NewController(tracker)
	require.NoError(t, err)

	r := gin.New()
	c.RegisterPublic(r.Group("/v1"))
	protected := r.Group("/v1")
	protected.Use(identity.Authoriz(stubTokenizer{}))
	c.RegisterProtected(protected)
	return r
}

func do(r http.Handler, method, url, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestProgressRoutes(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		r := newTestRouter(t, &fakeTracker{})
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/v1/progress", "", "").Code)
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/v1/progress", "forged", "").Code)
	})

	t.Run("fresh progress", func(t *testing.T) {
		r := newTestRouter(t, &fakeTracker{})
		w := do(r, http.MethodGet, "/v1/progress", "valid", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProgressResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, playerID.String(), resp.PlayerID)
		assert.Equal(t, 1, resp.Unlocked)
		assert.Empty(t, resp.Scores)
	})

	t.Run("complete a level", func(t *testing.T) {
		tracker := &fakeTracker{}
		r := newTestRouter(t, tracker)

		w := do(r, http.MethodPost, "/v1/progress/1", "valid", `{"score": 450, "questions": 3}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, tracker.completions, 1)
		assert.Equal(t, completion{playerID, "volta", 1, 450, 3}, tracker.completions[0])

		var resp ProgressResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Unlocked)
		assert.Equal(t, 450, resp.Scores[1].Score)
	})

	tests := []struct {
		name string
		url  string
		body string
		err  error
		code int
	}{
		{"locked level", "/v1/progress/3", `{"score": 10, "questions": 1}`, nil, http.StatusForbidden},
		{"negative score", "/v1/progress/1", `{"score": -1, "questions": 1}`, nil, http.StatusBadRequest},
		{"malformed body", "/v1/progress/1", `{"score":`, nil, http.StatusBadRequest},
		{"level not a number", "/v1/progress/x", `{"score": 1}`, nil, http.StatusBadRequest},
		{"unknown level", "/v1/progress/9", `{"score": 1}`, level.ErrUnknownLevel, http.StatusNotFound},
		{"storage failure", "/v1/progress/1", `{"score": 1}`, errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, &fakeTracker{err: tt.err})
			w := do(r, http.MethodPost, tt.url, "valid", tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestLeaderboardRoute(t *testing.T) {
	t.Run("public with limit", func(t *testing.T) {
		tracker := &fakeTracker{}
		r := newTestRouter(t, tracker)

		w := do(r, http.MethodGet, "/v1/levels/2/leaderboard?limit=3", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(3), tracker.limit)
		assert.JSONEq(t, `{"level": 2, "entries": [{"player": "volta", "score": 450}]}`, w.Body.String())
	})

	t.Run("default limit", func(t *testing.T) {
		tracker := &fakeTracker{}
		r := newTestRouter(t, tracker)

		require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/levels/2/leaderboard", "", "").Code)
		assert.Equal(t, int64(0), tracker.limit)
	})

	t.Run("errors", func(t *testing.T) {
		r := newTestRouter(t, &fakeTracker{})
		assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/v1/levels/8/leaderboard", "", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/v1/levels/2/leaderboard?limit=many", "", "").Code)
	})
}
