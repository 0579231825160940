package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridstar"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openGrid(width, height int) [][]int {
	grid := make([][]int, height)
	for y := range grid {
		grid[y] = make([]int, width)
	}
	return grid
}

// setupTestServer starts an engine over pf and returns its router.
func setupTestServer(t *testing.T, pf *gridstar.Pathfinder[int], tick time.Duration) *gin.Engine {
	t.Helper()
	engine := NewEngine(pf, tick, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = engine.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return NewRouter(NewHandlers(engine, NewJobStore(), nil), nil)
}

func configured(t *testing.T, grid [][]int, options ...gridstar.Option) *gridstar.Pathfinder[int] {
	t.Helper()
	pf := gridstar.New[int](options...)
	require.NoError(t, pf.SetGrid(grid))
	pf.SetAcceptableTiles(0)
	return pf
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJob(t *testing.T, w *httptest.ResponseRecorder) JobResponse {
	t.Helper()
	var resp JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func pathBody(sx, sy, ex, ey int) map[string]any {
	return map[string]any{
		"start": map[string]int{"x": sx, "y": sy},
		"end":   map[string]int{"x": ex, "y": ey},
	}
}

func TestHandleSubmit_FoundAfterTicks(t *testing.T) {
	r := setupTestServer(t, configured(t, openGrid(5, 5)), time.Millisecond)

	w := doJSON(t, r, http.MethodPost, "/v1/paths", pathBody(0, 0, 4, 4))
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	job := decodeJob(t, w)
	require.NotEmpty(t, job.ID)
	assert.Equal(t, StatusPending, job.Status)

	var final JobResponse
	require.Eventually(t, func() bool {
		final = decodeJob(t, doJSON(t, r, http.MethodGet, "/v1/paths/"+job.ID, nil))
		return final.Status != StatusPending
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, StatusFound, final.Status)
	assert.InDelta(t, 8.0, final.Cost, 1e-9)
	require.Len(t, final.Path, 9)
	assert.Equal(t, gridstar.Point{X: 0, Y: 0}, final.Path[0])
	assert.Equal(t, gridstar.Point{X: 4, Y: 4}, final.Path[8])
	assert.NotNil(t, final.CompletedAt)
}

func TestHandleSubmit_ImmediateInSyncMode(t *testing.T) {
	r := setupTestServer(t, configured(t, openGrid(3, 3), gridstar.WithSync(true)), time.Hour)

	w := doJSON(t, r, http.MethodPost, "/v1/paths", pathBody(1, 1, 1, 1))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	job := decodeJob(t, w)
	assert.Equal(t, StatusFound, job.Status)
	assert.Empty(t, job.Path)
}

func TestHandleSubmit_Errors(t *testing.T) {
	r := setupTestServer(t, configured(t, openGrid(3, 3)), time.Hour)

	t.Run("out of bounds", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/v1/paths", pathBody(0, 0, 5, 5))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing end", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/v1/paths", map[string]any{"start": map[string]int{"x": 0, "y": 0}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not configured", func(t *testing.T) {
		bare := setupTestServer(t, gridstar.New[int](), time.Hour)
		w := doJSON(t, bare, http.MethodPost, "/v1/paths", pathBody(0, 0, 1, 1))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandleGetAndCancel(t *testing.T) {
	pf := configured(t, openGrid(50, 50), gridstar.WithIterationsPerCalculation(1))
	// the ticker never fires during the test, so the job stays pending
	r := setupTestServer(t, pf, time.Hour)

	job := decodeJob(t, doJSON(t, r, http.MethodPost, "/v1/paths", pathBody(0, 0, 49, 49)))
	require.Equal(t, StatusPending, job.Status)

	got := decodeJob(t, doJSON(t, r, http.MethodGet, "/v1/paths/"+job.ID, nil))
	require.NotNil(t, got.Progress)
	assert.Equal(t, 0, got.Progress.Position)
	assert.Equal(t, 1, got.Progress.Open)
	assert.Equal(t, gridstar.Point{X: 0, Y: 0}, got.Progress.Best)
	assert.Zero(t, got.Progress.BestCost)

	w := doJSON(t, r, http.MethodDelete, "/v1/paths/"+job.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, StatusCancelled, decodeJob(t, w).Status)

	w = doJSON(t, r, http.MethodDelete, "/v1/paths/"+job.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	got = decodeJob(t, doJSON(t, r, http.MethodGet, "/v1/paths/"+job.ID, nil))
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Nil(t, got.Progress)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/v1/paths/unknown", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, "/v1/paths/unknown", nil).Code)
}

func TestHandlePutGrid(t *testing.T) {
	r := setupTestServer(t, configured(t, openGrid(2, 2), gridstar.WithSync(true)), time.Millisecond)

	w := doJSON(t, r, http.MethodPut, "/v1/grid", map[string]any{"rows": [][]int{{0, 0, 0, 0}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the wider grid accepts a point that was out of bounds before
	w = doJSON(t, r, http.MethodPost, "/v1/paths", pathBody(0, 0, 3, 0))
	assert.Contains(t, []int{http.StatusOK, http.StatusAccepted}, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPut, "/v1/grid", map[string]any{"rows": [][]int{{0, 0}, {0}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/v1/grid", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupTestServer(t, configured(t, openGrid(2, 2)), time.Millisecond)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gridstar_tick_duration_seconds")
}

func TestEngine_DoAfterStop(t *testing.T) {
	engine := NewEngine(gridstar.New[int](), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- engine.Run(ctx) }()

	called := false
	require.NoError(t, engine.Do(context.Background(), func(*gridstar.Pathfinder[int]) { called = true }))
	assert.True(t, called)

	cancel()
	require.NoError(t, <-done)
	assert.ErrorIs(t, engine.Do(context.Background(), func(*gridstar.Pathfinder[int]) {}), ErrEngineStopped)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/limited", RateLimit(0.001, 2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodGet, "/limited", nil).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodGet, "/limited", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doJSON(t, r, http.MethodGet, "/limited", nil).Code)
}
