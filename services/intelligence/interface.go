// File: services/intelligence/interface.go
package ai

import (
	"context"

	"lengolf/models"
)

// ChatRole is the author of a chat turn as the completion service sees it.
type ChatRole string

const (
	ChatUser  ChatRole = "user"
	ChatModel ChatRole = "model"
	ChatTool  ChatRole = "function"
)

// ToolResult carries one executed action's outcome back to the model.
type ToolResult struct {
	Name     models.ActionName
	Response map[string]any
}

// ChatMessage is one turn in a completion request. Exactly one of Text,
// ToolCalls or ToolResult is meaningful depending on Role.
type ChatMessage struct {
	Role       ChatRole
	Text       string
	ToolCalls  []models.FunctionCall
	ToolResult *ToolResult
}

// ToolParam describes a single named parameter in a tool schema.
type ToolParam struct {
	Type        string // "string" | "number" | "integer" | "boolean"
	Description string
	Enum        []string
}

// ToolSchema declares one action the model may request.
type ToolSchema struct {
	Name        string
	Description string
	Params      map[string]ToolParam
	Required    []string
}

// ChatRequest is the full input to one completion call: ordered messages plus
// the fixed action schema set, tool selection left to the model.
type ChatRequest struct {
	System   string
	Messages []ChatMessage
	Tools    []ToolSchema
}

// ChatResponse is either assistant text, one or more tool calls, or both.
type ChatResponse struct {
	Text      string
	ToolCalls []models.FunctionCall
}

// CompletionClient is the contract the orchestrator requires of the
// completion service.
type CompletionClient interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// EmbeddingClient turns free text into a fixed-length vector.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
