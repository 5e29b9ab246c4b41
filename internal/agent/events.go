package agent

import "context"

// EventType identifies a progress event emitted while the graph runs.
type EventType string

const (
	// EventAssistantMessage is the model's final (or intermediate) text.
	EventAssistantMessage EventType = "assistant_message"
	// EventToolCall is emitted when the model requests a tool invocation.
	EventToolCall EventType = "tool_call"
	// EventToolResult is emitted after a tool invocation completes.
	EventToolResult EventType = "tool_result"
)

// Event is one step of agent progress, suitable for streaming to a caller.
type Event struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id,omitempty"`
	Tool      string    `json:"tool,omitempty"`
	Arguments string    `json:"arguments,omitempty"`
	Content   string    `json:"content,omitempty"`
}

// Sink receives events in execution order. Implementations must be fast;
// the loop blocks on them.
type Sink func(Event)

type sinkKey struct{}

// WithSink attaches an event sink to the context for one graph invocation.
func WithSink(ctx context.Context, sink Sink) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink)
}

// emit delivers an event to the context sink, if any.
func emit(ctx context.Context, ev Event) {
	if sink, ok := ctx.Value(sinkKey{}).(Sink); ok && sink != nil {
		sink(ev)
	}
}
