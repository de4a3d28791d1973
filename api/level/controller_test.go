package level

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pb "github.com/beka-birhanu/circuit-maze/infrastruture/pb_encoder"
	lvl "github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/maze"
	"github.com/beka-birhanu/circuit-maze/scene"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

func newTestRouter(t *testing.T) (*gin.Engine, *lvl.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := lvl.NewRegistry(lvl.Config{Seeds: func() int64 { return 7 }})
	c, err := NewController(registry, scene.Builder{}, &pb.Protobuf{}, nopLogger{})
	require.NoError(t, err)

	r := gin.New()
	c.RegisterPublic(r.Group("/v1"))
	return r, registry
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestListLevels(t *testing.T) {
	r, _ := newTestRouter(t)

	w := get(r, "/v1/levels")
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []LevelSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, lvl.LastLevel)
	assert.Equal(t, "Ohm's Foundation", summaries[0].Name)
	assert.Equal(t, "Remember", summaries[0].Bloom)
	assert.Equal(t, "Create", summaries[4].Bloom)
}

func TestLoadLevel(t *testing.T) {
	r, registry := newTestRouter(t)

	t.Run("explicit seed", func(t *testing.T) {
		w := get(r, "/v1/levels/1?seed=42")
		require.Equal(t, http.StatusOK, w.Code)

		var resp LevelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.Seed)
		assert.Equal(t, 1, resp.Definition.Number)

		want, err := registry.Load(1, 42)
		require.NoError(t, err)
		assert.Equal(t, want.Grid.Width()*want.Grid.Height(), len(resp.Grid.Cells))
		assert.Equal(t, want.Grid.Start(), resp.Grid.Start)
		assert.Equal(t, want.Exit, resp.Exit)
		assert.Equal(t, want.QuestionGates, resp.QuestionGates)

		start := resp.Grid.Cells[resp.Grid.Start.Y*resp.Grid.Width+resp.Grid.Start.X]
		assert.False(t, start.Wall)
		assert.True(t, resp.Grid.Cells[0].Wall)
	})

	t.Run("drawn seed is reported", func(t *testing.T) {
		w := get(r, "/v1/levels/3")
		require.Equal(t, http.StatusOK, w.Code)

		var resp LevelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.Seed)
	})

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"unknown level", "/v1/levels/9", http.StatusNotFound},
		{"level not a number", "/v1/levels/one", http.StatusBadRequest},
		{"bad seed", "/v1/levels/1?seed=abc", http.StatusBadRequest},
		{"unknown level scene", "/v1/levels/0/scene", http.StatusNotFound},
		{"unknown level grid", "/v1/levels/6/grid", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.url)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestLevelScene(t *testing.T) {
	r, registry := newTestRouter(t)

	w := get(r, "/v1/levels/2/scene?seed=11")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Seed int64      `json:"seed"`
		Plan scene.Plan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	l, err := registry.Load(2, 11)
	require.NoError(t, err)
	walls := 0
	l.Grid.Each(func(_ maze.Position, c maze.Cell) {
		if c.Kind == maze.Wall {
			walls++
		}
	})

	assert.Equal(t, int64(11), resp.Seed)
	assert.Len(t, resp.Plan.Visuals, l.Grid.Width()*l.Grid.Height()+1)
	assert.Len(t, resp.Plan.Colliders, walls+1)
}

func TestLevelGrid(t *testing.T) {
	r, registry := newTestRouter(t)

	w := get(r, "/v1/levels/4/grid?seed=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, protobufContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "5", w.Header().Get("X-Maze-Seed"))

	got, err := (&pb.Protobuf{}).UnmarshalGrid(w.Body.Bytes())
	require.NoError(t, err)

	want, err := registry.Load(4, 5)
	require.NoError(t, err)
	assert.Equal(t, want.Grid.String(), got.String())
}

func TestNewControllerRequiresDependencies(t *testing.T) {
	_, err := NewController(nil, scene.Builder{}, &pb.Protobuf{}, nopLogger{})
	assert.Error(t, err)
}
