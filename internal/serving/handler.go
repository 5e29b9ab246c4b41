package serving

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"brickops/internal/agent"
	"brickops/internal/metrics"
	"brickops/pkg/logger"
)

// Invoker runs the agent graph over an initial state and returns the final
// state. *graph.StateRunnable[map[string]any] satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, state map[string]any) (map[string]any, error)
}

// Handler serves the model-serving invocation contract. Caller mistakes that
// a conversational client can recover from (missing input, agent failures)
// are reported as assistant text rather than HTTP errors, so chat front-ends
// never see a broken turn.
type Handler struct {
	runner Invoker
	log    *logger.Logger
}

// NewHandler creates the invocations handler.
func NewHandler(runner Invoker, log *logger.Logger) *Handler {
	return &Handler{
		runner: runner,
		log:    log.With("component", "serving"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Malformed invocation payload", "error", err)
		metrics.ObserveAgentRequest("error", time.Since(start))
		writeJSON(w, http.StatusOK, NewTextResponse("Error: invalid request payload."))
		return
	}

	if len(req.Input) == 0 {
		metrics.ObserveAgentRequest("error", time.Since(start))
		writeJSON(w, http.StatusOK, NewTextResponse("Error: 'input' key with a list of messages is required."))
		return
	}

	if req.Stream || wantsStream(r) {
		h.serveStream(w, r, req, start)
		return
	}

	state := map[string]any{"messages": toModelMessages(req.Input)}
	result, err := h.runner.Invoke(r.Context(), state)
	if err != nil {
		h.log.Error("Agent invocation failed", "error", err)
		metrics.ObserveAgentRequest("error", time.Since(start))
		writeJSON(w, http.StatusOK, NewTextResponse("Sorry, an error occurred: "+err.Error()))
		return
	}

	metrics.ObserveAgentRequest("success", time.Since(start))
	writeJSON(w, http.StatusOK, NewTextResponse(agent.FinalText(result)))
}

// serveStream runs the agent while forwarding progress events over SSE, then
// closes with the full response and a [DONE] marker.
func (h *Handler) serveStream(w http.ResponseWriter, r *http.Request, req Request, start time.Time) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sendEvent := func(v any) {
		b, err := json.Marshal(v)
		if err != nil {
			return
		}
		w.Write([]byte("data: "))
		w.Write(b)
		w.Write([]byte("\n\n"))
		flusher.Flush()
	}

	ctx := agent.WithSink(r.Context(), func(ev agent.Event) {
		sendEvent(ev)
	})

	state := map[string]any{"messages": toModelMessages(req.Input)}
	result, err := h.runner.Invoke(ctx, state)

	var resp Response
	if err != nil {
		h.log.Error("Agent invocation failed", "error", err)
		metrics.ObserveAgentRequest("error", time.Since(start))
		resp = NewTextResponse("Sorry, an error occurred: " + err.Error())
	} else {
		metrics.ObserveAgentRequest("success", time.Since(start))
		resp = NewTextResponse(agent.FinalText(result))
	}

	sendEvent(map[string]any{"type": "response.completed", "response": resp})
	w.Write([]byte("data: [DONE]\n\n"))
	flusher.Flush()
}

// toModelMessages maps wire roles onto chat model message types. Unknown
// roles are treated as user turns.
func toModelMessages(input []InputMessage) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(input))
	for _, m := range input {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case "assistant":
			role = llms.ChatMessageTypeAI
		case "system":
			role = llms.ChatMessageTypeSystem
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}
	return messages
}

func wantsStream(r *http.Request) bool {
	if r.URL.Query().Get("stream") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
