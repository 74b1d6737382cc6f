package model

import "strings"

// Conversation roles. Providers map these onto their own role names.
const (
	RoleSystem = "system"
	RoleUser   = "user"
	RoleModel  = "model"
	RoleTool   = "tool"
)

// FunctionCall represents a function invocation requested by the model.
type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse represents the result of a function invocation.
// Response holds either an "output" or an "error" key.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response,omitempty"`
}

// Part is a single piece of a conversation turn.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty"`

	// ThoughtSignature is opaque provider state that must be echoed back
	// with the part it came with.
	ThoughtSignature []byte `json:"thought_signature,omitempty"`
}

// Content is a single conversation turn, composed of one or more parts.
type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role"`
}

// Declaration is the model-facing description of a callable tool.
type Declaration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters,omitempty"`
}

// NewText builds a single-part text content for the given role.
func NewText(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// FunctionCalls returns the pending function calls of c, in order.
func (c Content) FunctionCalls() []*FunctionCall {
	var calls []*FunctionCall
	for _, p := range c.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// Text concatenates the text parts of c.
func (c Content) Text() string {
	var sb strings.Builder
	for _, p := range c.Parts {
		if p.FunctionCall != nil || p.FunctionResponse != nil {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
