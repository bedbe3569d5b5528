package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/fxforge/pkg/adapters/memory"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/workspace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	return NewHandler(workspace.NewManager(memory.NewStore()), opts...)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestApplyJobs_Single(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/projects/avatar/jobs",
		`{"kind": "int", "layer": "Outfit", "items": ["Casual", "Formal"], "menu": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp JobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, []string{"Outfit"}, resp.Reports[0].Layers)
	assert.Equal(t, 3, resp.Reports[0].ControlsInserted)

	w = do(t, h, "GET", "/projects/avatar", "")
	require.Equal(t, http.StatusOK, w.Code)
	var project domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	require.NotNil(t, project.Controller.Layer("Outfit"))
	assert.Len(t, project.Controller.Layer("Outfit").States, 3)

	w = do(t, h, "GET", "/projects", "")
	assert.JSONEq(t, `{"projects": ["avatar"]}`, w.Body.String())
}

func TestApplyJobs_ListAndPartialFailure(t *testing.T) {
	h := newTestHandler(t)

	body := `{"jobs": [
		{"kind": "control", "control": "Wave", "parameter": "Emote", "type": "int", "value": 1},
		{"kind": "overlay", "layer": "Jacket", "selector": "Missing", "items": [{"name": "Red", "group": 1}]}
	]}`
	w := do(t, h, "POST", "/projects/avatar/jobs", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp JobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Reports, 2)
	assert.Contains(t, resp.Error, "job 1 (overlay)")

	w = do(t, h, "GET", "/projects/avatar/menu/graph?format=tree", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wave (Emote = 1)")
}

func TestApplyJobs_BadBodies(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `{`},
		{"Unknown Kind", `{"kind": "spline"}`},
		{"Unknown Field", `{"kind": "bool", "layer": "A", "colour": "red"}`},
		{"Jobs Not A List", `{"jobs": {"kind": "bool"}}`},
		{"Empty List", `{"jobs": []}`},
		{"Folder", `{"kind": "overlay", "layer": "A", "selector": "B", "folder": "parts"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", "/projects/p/jobs", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	w := do(t, h, "GET", "/projects", "")
	assert.JSONEq(t, `{"projects": []}`, w.Body.String())
}

func TestProjectRoutes(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/projects/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "POST", "/projects/avatar/jobs", `{"kind": "bool", "layer": "Props", "items": ["Hat"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/projects/avatar/layers/Props/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "stateDiagram-v2"))
	assert.Contains(t, w.Body.String(), "[*] --> s_Default")

	w = do(t, h, "GET", "/projects/avatar/layers/Nope/graph", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/projects/avatar/menu/graph", "")
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))

	w = do(t, h, "DELETE", "/projects/avatar", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "GET", "/projects/avatar", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthInfoAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "fxforge_test_total", Help: "test"}))
	h := newTestHandler(t, WithMetrics(reg))

	w := do(t, h, "GET", "/healthz", "")
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Contains(t, w.Body.String(), `"app":"fxforge-http"`)

	w = do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fxforge_test_total")

	w = do(t, newTestHandler(t), "GET", "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEvents_ReceivesReports(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/projects/avatar/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)
	// Skip "data: connected" and the blank separator.
	_, _ = reader.ReadString('\n')
	_, _ = reader.ReadString('\n')

	post, err := http.Post(srv.URL+"/projects/avatar/jobs", "application/json",
		strings.NewReader(`{"kind": "control", "control": "Wave", "parameter": "Wave"}`))
	require.NoError(t, err)
	post.Body.Close()

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: report\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"job":"control"`)
}

func TestStreamManager_UnsubscribeCleansUp(t *testing.T) {
	sm := NewStreamManager()
	_, cancel := sm.Subscribe("p")
	sm.Broadcast("p", "hello")
	cancel()
	assert.Empty(t, sm.subscribers)
}
