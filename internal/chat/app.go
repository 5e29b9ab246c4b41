package chat

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"brickops/internal/adapters/config"
	"brickops/pkg/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

// App is the chat front-end: a single-page UI plus a thin proxy that
// forwards conversations to the deployed agent endpoint and relays its
// progress events back to the browser.
type App struct {
	cfg    config.ChatConfig
	client *http.Client
	index  *template.Template
	log    *logger.Logger
}

// NewApp creates the chat application.
func NewApp(cfg config.ChatConfig, log *logger.Logger) (*App, error) {
	index, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &App{
		cfg: cfg,
		client: &http.Client{
			// No overall timeout: agent turns stream for minutes.
			Timeout: 0,
		},
		index: index,
		log:   log.With("component", "chat"),
	}, nil
}

// Routes registers the chat application's handlers on the mux.
func (a *App) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", a.handleIndex)
	mux.HandleFunc("/api/chat", a.handleChat)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.index.Execute(w, map[string]string{"Title": a.cfg.Title}); err != nil {
		a.log.Error("Failed to render chat page", "error", err)
	}
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// handleChat forwards the conversation to the agent endpoint and relays its
// SSE events. Buffered (non-streaming) upstream replies are converted into a
// single assistant event so the browser code has one shape to handle.
func (a *App) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		http.Error(w, "messages are required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	sendEvent := func(payload string) {
		io.WriteString(w, "data: "+payload+"\n\n")
		flusher.Flush()
	}
	sendError := func(msg string) {
		b, _ := json.Marshal(map[string]string{"type": "error", "content": msg})
		sendEvent(string(b))
		sendEvent("[DONE]")
	}

	body, _ := json.Marshal(map[string]any{
		"input":  req.Messages,
		"stream": true,
	})

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, a.cfg.AgentURL, bytes.NewReader(body))
	if err != nil {
		sendError("failed to build agent request: " + err.Error())
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("Accept", "text/event-stream")
	if a.cfg.Token != "" {
		upstream.Header.Set("Authorization", "Bearer "+a.cfg.Token)
	}

	start := time.Now()
	resp, err := a.client.Do(upstream)
	if err != nil {
		a.log.Error("Agent request failed", "error", err)
		sendError("agent unreachable: " + err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		a.log.Error("Agent returned error status", "status", resp.StatusCode)
		sendError("agent returned " + resp.Status + ": " + string(msg))
		return
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/event-stream") {
		a.relayStream(resp.Body, sendEvent)
	} else {
		a.relayBuffered(resp.Body, sendEvent, sendError)
	}
	a.log.Debug("Chat turn finished", "elapsed", time.Since(start))
}

// relayStream forwards upstream SSE data lines verbatim. The closing
// response.completed event repeats text the agent already emitted as an
// assistant_message event, so it is only translated into one when no
// assistant_message arrived during the stream.
func (a *App) relayStream(body io.Reader, sendEvent func(string)) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sawAssistant := false
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break
		}

		switch gjson.Get(payload, "type").String() {
		case "response.completed":
			if sawAssistant {
				continue
			}
			text := gjson.Get(payload, "response.output.0.content.0.text").String()
			b, _ := json.Marshal(map[string]string{"type": "assistant_message", "content": text})
			sendEvent(string(b))
			continue
		case "assistant_message":
			sawAssistant = true
		}
		sendEvent(payload)
	}
	if err := scanner.Err(); err != nil {
		a.log.Error("Agent stream read failed", "error", err)
	}
	sendEvent("[DONE]")
}

// relayBuffered handles an agent that replied with a plain JSON response.
func (a *App) relayBuffered(body io.Reader, sendEvent func(string), sendError func(string)) {
	raw, err := io.ReadAll(body)
	if err != nil {
		sendError("failed to read agent response: " + err.Error())
		return
	}

	text := gjson.GetBytes(raw, "output.0.content.0.text").String()
	if text == "" {
		sendError("agent response had no output text")
		return
	}

	b, _ := json.Marshal(map[string]string{"type": "assistant_message", "content": text})
	sendEvent(string(b))
	sendEvent("[DONE]")
}
