package chat

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickops/internal/adapters/config"
	"brickops/pkg/logger"
)

func newTestApp(t *testing.T, agentURL, token string) *App {
	t.Helper()
	app, err := NewApp(config.ChatConfig{
		AgentURL: agentURL,
		Token:    token,
		Title:    "Workspace Admin Agent",
	}, logger.Get())
	require.NoError(t, err)
	return app
}

func postChat(t *testing.T, app *App, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.handleChat(rec, req)
	return rec
}

func TestIndexRendersTitle(t *testing.T) {
	app := newTestApp(t, "http://unused", "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.handleIndex(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Workspace Admin Agent")
}

func TestChatRelaysStreamedEvents(t *testing.T) {
	var gotAuth, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"type":"tool_call","tool":"list_clusters","arguments":"{}"}` + "\n\n"))
		w.Write([]byte(`data: {"type":"tool_result","tool":"list_clusters","content":"[]"}` + "\n\n"))
		w.Write([]byte(`data: {"type":"assistant_message","content":"no clusters"}` + "\n\n"))
		w.Write([]byte(`data: {"type":"response.completed","response":{"id":"r1","output":[{"type":"message","id":"m1","role":"assistant","content":[{"type":"output_text","text":"no clusters"}]}]}}` + "\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream.URL, "secret-token")
	rec := postChat(t, app, `{"messages": [{"role": "user", "content": "list clusters"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Contains(t, gotBody, `"stream":true`)

	body := rec.Body.String()
	assert.Contains(t, body, `"type":"tool_call"`)
	assert.Contains(t, body, `"type":"tool_result"`)
	assert.Contains(t, body, "no clusters")
	assert.NotContains(t, body, "response.completed")
	// The answer reaches the browser exactly once even though the endpoint
	// repeats it in response.completed
	assert.Equal(t, 1, strings.Count(body, "assistant_message"))
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestChatSynthesizesAnswerFromCompletedResponse(t *testing.T) {
	// Some turns carry no assistant_message event; the final text then only
	// exists inside response.completed.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"type":"tool_call","tool":"list_jobs","arguments":"{}"}` + "\n\n"))
		w.Write([]byte(`data: {"type":"tool_result","tool":"list_jobs","content":"[]"}` + "\n\n"))
		w.Write([]byte(`data: {"type":"response.completed","response":{"id":"r1","output":[{"type":"message","id":"m1","role":"assistant","content":[{"type":"output_text","text":"capped answer"}]}]}}` + "\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream.URL, "")
	rec := postChat(t, app, `{"messages": [{"role": "user", "content": "loop"}]}`)

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "assistant_message"))
	assert.Contains(t, body, "capped answer")
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestChatBufferedFallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"r1","output":[{"type":"message","id":"m1","role":"assistant","content":[{"type":"output_text","text":"buffered reply"}]}]}`))
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream.URL, "")
	rec := postChat(t, app, `{"messages": [{"role": "user", "content": "hi"}]}`)

	body := rec.Body.String()
	assert.Contains(t, body, `"type":"assistant_message"`)
	assert.Contains(t, body, "buffered reply")
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestChatUpstreamErrorBecomesErrorEvent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "endpoint not ready", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	app := newTestApp(t, upstream.URL, "")
	rec := postChat(t, app, `{"messages": [{"role": "user", "content": "hi"}]}`)

	body := rec.Body.String()
	assert.Contains(t, body, `"type":"error"`)
	assert.Contains(t, body, "503")
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	app := newTestApp(t, "http://unused", "")

	rec := postChat(t, app, `{"messages": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postChat(t, app, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
