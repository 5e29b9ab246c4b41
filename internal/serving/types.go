package serving

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Request is the serving-endpoint invocation payload. Input holds the
// conversation so far, oldest message first.
type Request struct {
	Input  []InputMessage `json:"input"`
	Stream bool           `json:"stream,omitempty"`
}

// InputMessage is one conversation turn. Content arrives either as a plain
// string or as a list of typed text parts, depending on the caller.
type InputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (m *InputMessage) UnmarshalJSON(b []byte) error {
	var raw struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.Role = raw.Role

	if len(raw.Content) == 0 {
		m.Content = ""
		return nil
	}

	var text string
	if err := json.Unmarshal(raw.Content, &text); err == nil {
		m.Content = text
		return nil
	}

	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw.Content, &parts); err != nil {
		return err
	}
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, p.Text)
	}
	m.Content = strings.Join(texts, " ")
	return nil
}

// Response is the serving-endpoint reply.
type Response struct {
	ID     string       `json:"id"`
	Output []OutputItem `json:"output"`
}

// OutputItem is one assistant message in the reply.
type OutputItem struct {
	Type    string        `json:"type"`
	ID      string        `json:"id"`
	Role    string        `json:"role"`
	Content []ContentItem `json:"content"`
}

// ContentItem is one text fragment of an output item.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextResponse wraps a single assistant text message in the reply shape.
func NewTextResponse(text string) Response {
	return Response{
		ID: uuid.NewString(),
		Output: []OutputItem{
			{
				Type: "message",
				ID:   uuid.NewString(),
				Role: "assistant",
				Content: []ContentItem{
					{Type: "output_text", Text: text},
				},
			},
		},
	}
}
