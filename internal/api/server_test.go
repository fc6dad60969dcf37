package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow/internal/config"
	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/llm"
	"github.com/focusflow/focusflow/internal/store"
	"github.com/focusflow/focusflow/internal/tasks"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := tasks.NewService(st.TaskRepo(), st.EventRepo())
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	srv := NewServer(config.Default().Server, svc, opts...)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	status, env := do(t, ts, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"healthy","time":"2026-06-01T12:00:00Z"}`, string(env.Data))
}

func TestClassify(t *testing.T) {
	ts := newTestServer(t)

	status, env := do(t, ts, http.MethodPost, "/api/v1/classify", map[string]string{"title": "Call mom"})
	require.Equal(t, http.StatusOK, status)

	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "easy", got["tier"])
	assert.Equal(t, 1.0, got["confidence"])
	assert.Equal(t, 25.0, got["suggestedXP"])
	assert.Equal(t, 15.0, got["suggestedTimeMinutes"])
	assert.Equal(t, "🌱", got["emoji"])
	assert.Equal(t, "#22C55E", got["color"])
	assert.Equal(t, "Quick & Simple", got["label"])
	assert.NotContains(t, got, "advice")
}

func TestClassify_EmptyTitleIsStillClassified(t *testing.T) {
	ts := newTestServer(t)

	status, env := do(t, ts, http.MethodPost, "/api/v1/classify", map[string]string{})
	require.Equal(t, http.StatusOK, status)

	var got difficulty.Result
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, difficulty.Classify("", ""), got)
}

func TestClassify_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/classify", bytes.NewBufferString("{"))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClassify_WithAdvice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"tier":"hard","confidence":0.8,"reasoning":"Big presentation"}`),
	})
	advisor := difficulty.NewAdvisor(mock, difficulty.DefaultAdvisorConfig())
	ts := newTestServer(t, WithAdvisor(advisor, 0.6))

	// Confident result: no LLM call.
	_, env := do(t, ts, http.MethodPost, "/api/v1/classify", map[string]any{"title": "Call mom", "advise": true})
	assert.NotContains(t, string(env.Data), `"advice"`)
	assert.Equal(t, 0, mock.CallCount())

	// Low confidence: advice attached.
	_, env = do(t, ts, http.MethodPost, "/api/v1/classify", map[string]any{
		"title":  "Figure out the garden gnome situation",
		"advise": true,
	})
	var got classifyResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.NotNil(t, got.Advice)
	assert.Equal(t, difficulty.TierHard, got.Advice.Tier)
	assert.Equal(t, difficulty.TierMedium, got.Tier, "heuristic tier unchanged")
	assert.Equal(t, 1, mock.CallCount())
}

func TestTiers(t *testing.T) {
	ts := newTestServer(t)

	_, env := do(t, ts, http.MethodGet, "/api/v1/tiers", nil)
	var got []difficulty.Info
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, difficulty.InfoFor(difficulty.TierEasy), got[0])
	assert.Equal(t, 120, got[2].Minutes)
}

func TestTaskLifecycle(t *testing.T) {
	ts := newTestServer(t)

	status, env := do(t, ts, http.MethodPost, "/api/v1/tasks", map[string]string{"title": "Research and write my thesis"})
	require.Equal(t, http.StatusCreated, status)
	var created tasks.Task
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, difficulty.TierHard, created.Tier)
	assert.NotEmpty(t, created.ID)

	status, env = do(t, ts, http.MethodGet, "/api/v1/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var fetched tasks.Task
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.Title, fetched.Title)

	status, env = do(t, ts, http.MethodPost, "/api/v1/tasks/"+created.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)
	var done tasks.Completion
	require.NoError(t, json.Unmarshal(env.Data, &done))
	assert.Equal(t, 100, done.XPAwarded)
	assert.Equal(t, 1, done.Level)
	assert.True(t, done.LeveledUp)

	status, env = do(t, ts, http.MethodPost, "/api/v1/tasks/"+created.ID+"/complete", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already_completed", env.Error.Code)

	status, env = do(t, ts, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, status)
	var st tasks.Stats
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 100, st.TotalXP)
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, 1, st.Streak)
}

func TestCreateTask_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
		code string
	}{
		{"missing title", map[string]string{"description": "x"}, "validation_error"},
		{"bad tier", map[string]string{"title": "x", "tier": "epic"}, "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, ts, http.MethodPost, "/api/v1/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestCreateTask_ManualTier(t *testing.T) {
	ts := newTestServer(t)

	_, env := do(t, ts, http.MethodPost, "/api/v1/tasks", map[string]string{"title": "Call mom", "tier": "Hard"})
	var created tasks.Task
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, difficulty.TierHard, created.Tier)
	assert.True(t, created.ManualTier)
	assert.Equal(t, 100, created.XP)
}

func TestListTasks(t *testing.T) {
	ts := newTestServer(t)

	for _, title := range []string{"Call mom", "Research and write my thesis", "Text the plumber"} {
		status, _ := do(t, ts, http.MethodPost, "/api/v1/tasks", map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, status)
	}

	count := func(path string) int {
		status, env := do(t, ts, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, status, path)
		var list []tasks.Task
		require.NoError(t, json.Unmarshal(env.Data, &list))
		return len(list)
	}

	assert.Equal(t, 3, count("/api/v1/tasks"))
	assert.Equal(t, 2, count("/api/v1/tasks?tier=easy"))
	assert.Equal(t, 1, count("/api/v1/tasks?limit=1"))
	assert.Equal(t, 3, count("/api/v1/tasks?status=open"))
	assert.Equal(t, 0, count("/api/v1/tasks?status=completed"))

	for _, bad := range []string{"?status=later", "?tier=epic", "?limit=-1", "?limit=x"} {
		status, _ := do(t, ts, http.MethodGet, "/api/v1/tasks"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, status, bad)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	ts := newTestServer(t)

	status, env := do(t, ts, http.MethodGet, "/api/v1/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "task_not_found", env.Error.Code)

	status, _ = do(t, ts, http.MethodPost, "/api/v1/tasks/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/classify", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	st, err := store.Open("file:api-listen?mode=memory&cache=shared")
	require.NoError(t, err)
	defer st.Close()

	srv := NewServer(config.ServerConfig{Addr: "127.0.0.1:0"}, tasks.NewService(st.TaskRepo(), st.EventRepo()))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
