// Package agent runs the model loop: the LLM picks tools from the registry,
// tool results are fed back, and the loop ends when the model produces a
// plain text answer.
package agent

import (
	"context"
	"fmt"

	"github.com/coinsage/coinsage/internal/tools"
)

// Message roles shared by both providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolCall represents a tool invocation request from the LLM
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// Result is one completed agent run.
type Result struct {
	Text      string
	ToolsUsed []string
}

// Agent is a tool-calling LLM provider. Run takes the conversation so far
// (the last entry is the current user prompt) and returns the final text.
type Agent interface {
	Run(ctx context.Context, systemPrompt string, history []Message, registry []tools.Tool) (*Result, error)
	// Complete sends a bare prompt with no tools; the compare harness uses
	// it for the unaugmented baseline.
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	maxIterations = 10
	// Past this many iterations the model is told to answer with the data
	// it already has.
	forceAnswerAfter = 7
)

func executeTool(ctx context.Context, tc ToolCall, registry []tools.Tool) (string, error) {
	if t, ok := tools.Find(registry, tc.Name); ok {
		return t.Execute(ctx, tc.Input)
	}
	return "", fmt.Errorf("unknown tool: %s", tc.Name)
}
