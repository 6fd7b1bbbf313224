package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coinsage/coinsage/internal/tools"
	"github.com/rs/zerolog/log"
)

// OllamaAgent drives a local model through Ollama's /api/chat endpoint
// using its native tool-calling support.
type OllamaAgent struct {
	host  string
	model string
	http  *http.Client
}

func NewOllamaAgent(host, model string) *OllamaAgent {
	return &OllamaAgent{
		host:  host,
		model: model,
		http:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// ─── Ollama wire types ────────────────────────────────────────────────────────

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
}

type ollamaToolCall struct {
	Function struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	} `json:"function"`
}

type ollamaTool struct {
	Type     string `json:"type"` // always "function"
	Function struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		Parameters  map[string]interface{} `json:"parameters"`
	} `json:"function"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Tools    []ollamaTool    `json:"tools,omitempty"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error,omitempty"`
}

// chatOptions keeps tool selection consistent across runs.
var chatOptions = map[string]any{"temperature": 0.1}

// Run implements the agent loop over /api/chat. Tool results are sent back
// as role "tool" messages until the model stops requesting calls.
func (a *OllamaAgent) Run(ctx context.Context, systemPrompt string, history []Message, registry []tools.Tool) (*Result, error) {
	msgs := make([]ollamaMessage, 0, len(history)+1)
	if systemPrompt != "" {
		msgs = append(msgs, ollamaMessage{Role: "system", Content: systemPrompt})
	}
	for _, m := range history {
		msgs = append(msgs, ollamaMessage{Role: m.Role, Content: m.Content})
	}

	ollamaTools := make([]ollamaTool, len(registry))
	for i, t := range registry {
		ollamaTools[i].Type = "function"
		ollamaTools[i].Function.Name = t.Name
		ollamaTools[i].Function.Description = t.Description
		ollamaTools[i].Function.Parameters = t.InputSchema
	}

	var toolsUsed []string

	for iter := 0; iter < maxIterations; iter++ {
		sendTools := ollamaTools
		if iter >= forceAnswerAfter {
			msgs = append(msgs, ollamaMessage{
				Role:    "user",
				Content: "You have enough data. Please provide your final answer now without calling any more tools.",
			})
			sendTools = nil
		}

		resp, err := a.chat(ctx, ollamaChatRequest{
			Model:    a.model,
			Messages: msgs,
			Tools:    sendTools,
			Stream:   false,
			Options:  chatOptions,
		})
		if err != nil {
			return nil, fmt.Errorf("LLM call failed: %w", err)
		}

		log.Debug().
			Int("iter", iter).
			Int("tool_calls", len(resp.Message.ToolCalls)).
			Msg("agent iteration")

		if len(resp.Message.ToolCalls) == 0 {
			return &Result{Text: resp.Message.Content, ToolsUsed: toolsUsed}, nil
		}

		msgs = append(msgs, resp.Message)
		for _, tc := range resp.Message.ToolCalls {
			toolsUsed = append(toolsUsed, tc.Function.Name)
			result, execErr := executeTool(ctx, ToolCall{
				Name:  tc.Function.Name,
				Input: tc.Function.Arguments,
			}, registry)
			if execErr != nil {
				log.Warn().Err(execErr).Str("tool", tc.Function.Name).Msg("tool execution error")
				result = fmt.Sprintf("error: %v", execErr)
			}
			msgs = append(msgs, ollamaMessage{Role: "tool", Content: result})
		}
	}

	return nil, fmt.Errorf("agent loop exceeded max iterations (%d)", maxIterations)
}

// Complete sends a single prompt without tools.
func (a *OllamaAgent) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.chat(ctx, ollamaChatRequest{
		Model:    a.model,
		Messages: []ollamaMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  chatOptions,
	})
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// CheckAvailable verifies the Ollama server is reachable and the configured
// model is pulled.
func (a *OllamaAgent) CheckAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.host+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama is not running at %s: %w", a.host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("decode model list: %w", err)
	}
	for _, m := range tags.Models {
		if m.Name == a.model || trimTag(m.Name) == a.model {
			return nil
		}
	}
	return fmt.Errorf("model %q not found on %s, pull it with 'ollama pull %s'", a.model, a.host, a.model)
}

func (a *OllamaAgent) chat(ctx context.Context, payload ollamaChatRequest) (*ollamaChatResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ollama response: %w", err)
	}

	var out ollamaChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode ollama response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("ollama: %s", out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return &out, nil
}

// trimTag drops the ":tag" suffix from a model name so "llama3.2" matches
// "llama3.2:latest".
func trimTag(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i]
		}
	}
	return name
}
