package serving

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"brickops/pkg/errors"
	"brickops/pkg/logger"
)

// fakeInvoker returns a fixed final state or error, and records the initial
// state it received.
type fakeInvoker struct {
	gotState map[string]any
	reply    string
	err      error
}

func (f *fakeInvoker) Invoke(ctx context.Context, state map[string]any) (map[string]any, error) {
	f.gotState = state
	if f.err != nil {
		return nil, f.err
	}
	messages := append(
		state["messages"].([]llms.MessageContent),
		llms.TextParts(llms.ChatMessageTypeAI, f.reply),
	)
	return map[string]any{"messages": messages}, nil
}

func postInvocation(t *testing.T, handler http.Handler, body string) Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/invocations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func responseText(t *testing.T, resp Response) string {
	t.Helper()
	require.Len(t, resp.Output, 1)
	require.Len(t, resp.Output[0].Content, 1)
	return resp.Output[0].Content[0].Text
}

func TestInvocationsHappyPath(t *testing.T) {
	invoker := &fakeInvoker{reply: "two clusters are running"}
	handler := NewHandler(invoker, logger.Get())

	resp := postInvocation(t, handler, `{"input": [{"role": "user", "content": "list clusters"}]}`)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "message", resp.Output[0].Type)
	assert.Equal(t, "assistant", resp.Output[0].Role)
	assert.Equal(t, "output_text", resp.Output[0].Content[0].Type)
	assert.Equal(t, "two clusters are running", responseText(t, resp))

	messages := invoker.gotState["messages"].([]llms.MessageContent)
	require.Len(t, messages, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, messages[0].Role)
}

func TestInvocationsMissingInputIsTextError(t *testing.T) {
	handler := NewHandler(&fakeInvoker{reply: "unused"}, logger.Get())

	resp := postInvocation(t, handler, `{}`)
	assert.Equal(t, "Error: 'input' key with a list of messages is required.", responseText(t, resp))
}

func TestInvocationsMalformedBodyIsTextError(t *testing.T) {
	handler := NewHandler(&fakeInvoker{reply: "unused"}, logger.Get())

	resp := postInvocation(t, handler, `{broken`)
	assert.Contains(t, responseText(t, resp), "Error: ")
}

func TestInvocationsAgentFailureIsApology(t *testing.T) {
	handler := NewHandler(&fakeInvoker{err: errors.New("model exploded")}, logger.Get())

	resp := postInvocation(t, handler, `{"input": [{"role": "user", "content": "hi"}]}`)
	assert.Equal(t, "Sorry, an error occurred: model exploded", responseText(t, resp))
}

func TestInvocationsRejectsGet(t *testing.T) {
	handler := NewHandler(&fakeInvoker{}, logger.Get())

	req := httptest.NewRequest(http.MethodGet, "/invocations", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestInvocationsMapsRoles(t *testing.T) {
	invoker := &fakeInvoker{reply: "ok"}
	handler := NewHandler(invoker, logger.Get())

	postInvocation(t, handler, `{"input": [
		{"role": "system", "content": "be terse"},
		{"role": "user", "content": "hi"},
		{"role": "assistant", "content": "hello"},
		{"role": "user", "content": "list jobs"}
	]}`)

	messages := invoker.gotState["messages"].([]llms.MessageContent)
	require.Len(t, messages, 4)
	assert.Equal(t, llms.ChatMessageTypeSystem, messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, messages[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, messages[2].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, messages[3].Role)
}

func TestInvocationsStreaming(t *testing.T) {
	invoker := &fakeInvoker{reply: "streamed answer"}
	handler := NewHandler(invoker, logger.Get())

	req := httptest.NewRequest(http.MethodPost, "/invocations?stream=true",
		strings.NewReader(`{"input": [{"role": "user", "content": "hi"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

	body := rec.Body.String()
	assert.Contains(t, body, `"type":"response.completed"`)
	assert.Contains(t, body, "streamed answer")
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestInvocationsStreamFieldInBody(t *testing.T) {
	invoker := &fakeInvoker{reply: "ok"}
	handler := NewHandler(invoker, logger.Get())

	req := httptest.NewRequest(http.MethodPost, "/invocations",
		strings.NewReader(`{"input": [{"role": "user", "content": "hi"}], "stream": true}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, rec.Body.String(), "data: [DONE]")
}
