package agent

import (
	"context"
	"time"

	"github.com/smallnest/langgraphgo/graph"
	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/llms"

	"brickops/internal/adapters/config"
	"brickops/internal/metrics"
	"brickops/internal/tools"
	"brickops/pkg/errors"
	"brickops/pkg/logger"
)

// Builder binds the tool registry to a chat model and assembles the
// two-node reasoning/tool loop: the agent node asks the model for the next
// step, a conditional edge routes to the tools node while tool calls are
// pending, and the loop ends when the model answers without tool calls.
type Builder struct {
	model        llms.Model
	registry     *tools.Registry
	systemPrompt string
	temperature  float64
	maxRounds    int
	log          *logger.Logger
}

// NewBuilder creates a graph builder for the given model and tool set.
func NewBuilder(model llms.Model, registry *tools.Registry, cfg config.ModelConfig, log *logger.Logger) *Builder {
	maxRounds := cfg.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = 20
	}
	return &Builder{
		model:        model,
		registry:     registry,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
		maxRounds:    maxRounds,
		log:          log.With("component", "agent_graph"),
	}
}

// toolDefs converts the registered tools into the model-facing schema.
func (b *Builder) toolDefs() []llms.Tool {
	var defs []llms.Tool
	for _, t := range b.registry.All() {
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// Build compiles the graph. The compiled runnable is safe for concurrent
// invocations; all per-request state travels in the message list.
func (b *Builder) Build() (*graph.StateRunnable[map[string]any], error) {
	toolDefs := b.toolDefs()

	workflow := graph.NewStateGraph[map[string]any]()

	schema := graph.NewMapSchema()
	schema.RegisterReducer("messages", graph.AppendReducer)
	workflow.SetSchema(schema)

	workflow.AddNode("agent", "workspace admin decision maker", func(ctx context.Context, state map[string]any) (map[string]any, error) {
		messages, ok := state["messages"].([]llms.MessageContent)
		if !ok {
			return nil, errors.New("messages key not found or invalid type")
		}

		rounds := 0
		if n, ok := state["tool_rounds"].(int); ok {
			rounds = n
		}
		if rounds >= b.maxRounds {
			b.log.Warn("Tool round cap reached", "rounds", rounds)
			const capMsg = "Maximum tool rounds reached. Please try a simpler request."
			emit(ctx, Event{Type: EventAssistantMessage, Content: capMsg})
			final := llms.TextParts(llms.ChatMessageTypeAI, capMsg)
			return map[string]any{"messages": []llms.MessageContent{final}}, nil
		}

		input := make([]llms.MessageContent, 0, len(messages)+1)
		input = append(input, llms.TextParts(llms.ChatMessageTypeSystem, b.systemPrompt))
		input = append(input, messages...)

		start := time.Now()
		resp, err := b.model.GenerateContent(ctx, input,
			llms.WithTools(toolDefs),
			llms.WithTemperature(b.temperature),
		)
		if err != nil {
			metrics.ObserveModelCall("error", time.Since(start))
			return nil, errors.Wrap(err, "model completion failed")
		}
		metrics.ObserveModelCall("success", time.Since(start))

		if len(resp.Choices) == 0 {
			return nil, errors.ErrEmptyCompletion
		}
		choice := resp.Choices[0]

		aiMsg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			aiMsg.Parts = append(aiMsg.Parts, llms.TextPart(choice.Content))
		}
		for _, tc := range choice.ToolCalls {
			aiMsg.Parts = append(aiMsg.Parts, tc)
			emit(ctx, Event{
				Type:      EventToolCall,
				ID:        tc.ID,
				Tool:      tc.FunctionCall.Name,
				Arguments: tc.FunctionCall.Arguments,
			})
		}
		if len(choice.ToolCalls) == 0 {
			emit(ctx, Event{Type: EventAssistantMessage, Content: choice.Content})
		}

		return map[string]any{
			"messages":    []llms.MessageContent{aiMsg},
			"tool_rounds": rounds + 1,
		}, nil
	})

	workflow.AddNode("tools", "workspace tool executor", func(ctx context.Context, state map[string]any) (map[string]any, error) {
		messages, ok := state["messages"].([]llms.MessageContent)
		if !ok || len(messages) == 0 {
			return nil, errors.New("messages key not found or invalid type")
		}
		lastMsg := messages[len(messages)-1]
		if lastMsg.Role != llms.ChatMessageTypeAI {
			return nil, errors.New("last message is not an AI message")
		}

		// Execute calls sequentially, in the order the model requested them.
		var toolMessages []llms.MessageContent
		for _, part := range lastMsg.Parts {
			tc, ok := part.(llms.ToolCall)
			if !ok {
				continue
			}

			result := b.execute(ctx, tc.FunctionCall.Name, tc.FunctionCall.Arguments)
			emit(ctx, Event{
				Type:    EventToolResult,
				ID:      tc.ID,
				Tool:    tc.FunctionCall.Name,
				Content: result,
			})

			toolMessages = append(toolMessages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       tc.FunctionCall.Name,
						Content:    result,
					},
				},
			})
		}

		return map[string]any{"messages": toolMessages}, nil
	})

	workflow.SetEntryPoint("agent")

	workflow.AddConditionalEdge("agent", func(ctx context.Context, state map[string]any) string {
		messages, ok := state["messages"].([]llms.MessageContent)
		if !ok || len(messages) == 0 {
			return graph.END
		}
		lastMsg := messages[len(messages)-1]
		for _, part := range lastMsg.Parts {
			if _, ok := part.(llms.ToolCall); ok {
				return "tools"
			}
		}
		return graph.END
	})

	workflow.AddEdge("tools", "agent")

	return workflow.Compile()
}

// execute runs one tool call. Unknown tools and remote failures both come
// back as error JSON; the loop never aborts on a bad tool call.
func (b *Builder) execute(ctx context.Context, name, args string) string {
	t, ok := b.registry.Get(name)
	if !ok {
		b.log.Warn("Model requested unregistered tool", "tool", name)
		metrics.ObserveToolExecution(name, "error", 0)
		return tools.ErrorPayload(name, errors.Wrapf(errors.ErrUnknownTool, "%s", name))
	}

	start := time.Now()
	result := t.Call(ctx, args)

	status := "success"
	if gjson.Get(result, "error").Exists() {
		status = "error"
	}
	metrics.ObserveToolExecution(name, status, time.Since(start))
	b.log.Debug("Tool executed", "tool", name, "status", status)

	return result
}

// FinalText extracts the text of the last assistant message from a finished
// graph state.
func FinalText(state map[string]any) string {
	messages, ok := state["messages"].([]llms.MessageContent)
	if !ok || len(messages) == 0 {
		return ""
	}
	last := messages[len(messages)-1]

	var text string
	for _, part := range last.Parts {
		if tp, ok := part.(llms.TextContent); ok {
			text += tp.Text
		}
	}
	return text
}
