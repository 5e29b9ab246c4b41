package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"brickops/internal/databricks"
	"brickops/pkg/logger"
)

// Tool represents a callable workspace operation exposed to the agent.
// Call never fails: remote errors are folded into the returned JSON so the
// model can relay them conversationally.
type Tool interface {
	// Name returns the unique tool identifier.
	Name() string
	// Description returns a short human-readable summary handed to the model.
	Description() string
	// Parameters returns the JSON schema of the tool's arguments.
	Parameters() map[string]any
	// Call performs the tool's action using JSON-encoded arguments and
	// returns a JSON-encoded result or error payload.
	Call(ctx context.Context, args string) string
}

// Deps carries what every tool constructor needs.
type Deps struct {
	Client databricks.Client
	Log    *logger.Logger
}

// HandlerFunc is the function signature for tool handlers.
type HandlerFunc func(ctx context.Context, args string) string

// FunctionTool is a simple Tool implementation backed by a handler function.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	handler     HandlerFunc
}

// New creates a new function-backed Tool.
func New(name, description string, parameters map[string]any, handler HandlerFunc) Tool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		handler:     handler,
	}
}

// Name returns the tool identifier.
func (t *FunctionTool) Name() string { return t.name }

// Description returns a human description of the tool.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the argument schema.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call runs the underlying handler.
func (t *FunctionTool) Call(ctx context.Context, args string) string {
	return t.handler(ctx, args)
}

// objectSchema builds a JSON schema for an object with the given properties.
func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// prop builds a single JSON schema property.
func prop(typ, description string) map[string]any {
	return map[string]any{
		"type":        typ,
		"description": description,
	}
}

// decodeArgs unmarshals the model-provided argument JSON. An empty argument
// string is treated as an empty object.
func decodeArgs(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "{}"
	}
	return json.Unmarshal([]byte(raw), v)
}

// marshalResult serializes a successful remote payload for the model.
func marshalResult(tool string, v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return errorResult(tool, err)
	}
	return string(b)
}

// successMessage reports a completed mutation in the uniform status shape.
func successMessage(format string, args ...any) string {
	b, _ := json.Marshal(map[string]string{
		"status":  "Success",
		"message": fmt.Sprintf(format, args...),
	})
	return string(b)
}

// ErrorPayload reports a failed call in the uniform error shape. The error
// text goes back to the model as data; nothing propagates past the tool
// boundary.
func ErrorPayload(tool string, err error) string {
	b, _ := json.Marshal(map[string]string{
		"error": "Databricks API Error: " + err.Error(),
		"tool":  tool,
	})
	return string(b)
}

func errorResult(tool string, err error) string {
	return ErrorPayload(tool, err)
}

// stringID accepts either a JSON string or a bare number, since models are
// inconsistent about quoting SCIM and cluster identifiers.
type stringID string

func (s *stringID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = stringID(n.String())
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	*s = stringID(str)
	return nil
}
