package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolFunc is a tool's pure implementation: arguments in, result out,
// both raw JSON. Implementations must be reentrant and free of global
// state (spec.md section 5).
type ToolFunc func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

// Tool pairs a descriptor with its implementation.
type Tool struct {
	Descriptor ToolDescriptor
	Fn         ToolFunc
}

// Registry is a name-keyed dispatch table for tools, the corpus's
// string-switch tool dispatch (internal/server's message-type routing)
// rewritten as an explicit registry per REDESIGN FLAGS section 9:
// "express tools as a registry keyed by name to a variant
// (schema_descriptor, pure_fn: args -> result_json)".
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds a Registry from a fixed set of tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Descriptor.Name] = t
	}
	return r
}

// Descriptors returns every tool's descriptor, for offering to the
// model in a CompletionRequest.
func (r *Registry) Descriptors() []ToolDescriptor {
	out := make([]ToolDescriptor, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Descriptor)
	}
	return out
}

// toolError is the structured error object embedded in a tool message's
// payload when a tool name is unknown or its function fails.
type toolError struct {
	Error string `json:"error"`
}

// Call dispatches name with args, returning its result or a structured
// error object (never a Go error) so the caller can always append a
// well-formed tool message to the conversation.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) json.RawMessage {
	t, ok := r.tools[name]
	if !ok {
		b, _ := json.Marshal(toolError{Error: fmt.Sprintf("unknown tool %q", name)})
		return b
	}
	result, err := t.Fn(ctx, args)
	if err != nil {
		b, _ := json.Marshal(toolError{Error: err.Error()})
		return b
	}
	return result
}
