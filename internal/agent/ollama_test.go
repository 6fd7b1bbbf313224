package agent_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coinsage/coinsage/internal/agent"
	"github.com/coinsage/coinsage/internal/tools"
)

func echoTool(name string, calls *[]map[string]interface{}) tools.Tool {
	return tools.Tool{
		Name:        name,
		Description: "test tool",
		InputSchema: map[string]interface{}{"type": "object", "properties": map[string]interface{}{}},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			*calls = append(*calls, input)
			return `{"ok": true}`, nil
		},
	}
}

func TestOllamaRunToolLoop(t *testing.T) {
	var toolCalls []map[string]interface{}
	registry := []tools.Tool{echoTool("get_crypto_price", &toolCalls)}

	var requests []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		requests = append(requests, req)

		if len(requests) == 1 {
			// First turn: ask for a tool call
			fmt.Fprint(w, `{"message": {"role": "assistant", "content": "",
				"tool_calls": [{"function": {"name": "get_crypto_price", "arguments": {"symbol": "BTC"}}}]}}`)
			return
		}
		// Second turn: final answer
		fmt.Fprint(w, `{"message": {"role": "assistant", "content": "Bitcoin is at $97,000."}}`)
	}))
	defer srv.Close()

	a := agent.NewOllamaAgent(srv.URL, "llama3.2")
	res, err := a.Run(context.Background(), "be helpful", []agent.Message{
		{Role: agent.RoleUser, Content: "price of BTC?"},
	}, registry)
	if err != nil {
		t.Fatal(err)
	}

	if res.Text != "Bitcoin is at $97,000." {
		t.Errorf("text = %q", res.Text)
	}
	if len(res.ToolsUsed) != 1 || res.ToolsUsed[0] != "get_crypto_price" {
		t.Errorf("tools used = %v", res.ToolsUsed)
	}
	if len(toolCalls) != 1 || toolCalls[0]["symbol"] != "BTC" {
		t.Errorf("tool received %v", toolCalls)
	}

	// First request carries system prompt, user turn, and tool definitions
	first := requests[0]
	msgs := first["messages"].([]interface{})
	if len(msgs) != 2 {
		t.Fatalf("first request has %d messages, want system + user", len(msgs))
	}
	if msgs[0].(map[string]interface{})["role"] != "system" {
		t.Error("first message should be the system prompt")
	}
	if first["tools"] == nil {
		t.Error("tools missing from first request")
	}

	// Second request includes the assistant turn and the tool result
	second := requests[1]
	msgs = second["messages"].([]interface{})
	last := msgs[len(msgs)-1].(map[string]interface{})
	if last["role"] != "tool" {
		t.Errorf("last message role = %v, want tool", last["role"])
	}
	if !strings.Contains(last["content"].(string), `"ok": true`) {
		t.Errorf("tool result not forwarded, got %v", last["content"])
	}
}

func TestOllamaRunToolError(t *testing.T) {
	registry := []tools.Tool{{
		Name:        "get_crypto_price",
		Description: "test tool",
		InputSchema: map[string]interface{}{"type": "object"},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			return "", fmt.Errorf("boom")
		},
	}}

	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		if call == 1 {
			fmt.Fprint(w, `{"message": {"role": "assistant", "content": "",
				"tool_calls": [{"function": {"name": "get_crypto_price", "arguments": {}}}]}}`)
			return
		}
		// The error must come back as a tool message, not kill the loop
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		last := req.Messages[len(req.Messages)-1]
		if last.Role != "tool" || !strings.Contains(last.Content, "boom") {
			t.Errorf("expected tool error message, got %+v", last)
		}
		fmt.Fprint(w, `{"message": {"role": "assistant", "content": "I could not fetch that."}}`)
	}))
	defer srv.Close()

	a := agent.NewOllamaAgent(srv.URL, "llama3.2")
	res, err := a.Run(context.Background(), "", []agent.Message{{Role: agent.RoleUser, Content: "hi"}}, registry)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "I could not fetch that." {
		t.Errorf("text = %q", res.Text)
	}
}

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["tools"] != nil {
			t.Error("Complete should not send tools")
		}
		fmt.Fprint(w, `{"message": {"role": "assistant", "content": "hello"}}`)
	}))
	defer srv.Close()

	a := agent.NewOllamaAgent(srv.URL, "llama3.2")
	got, err := a.Complete(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestOllamaErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "model 'nope' not found"}`)
	}))
	defer srv.Close()

	a := agent.NewOllamaAgent(srv.URL, "nope")
	_, err := a.Complete(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected ollama error to surface, got %v", err)
	}
}

func TestOllamaCheckAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"models": [{"name": "llama3.2:latest"}, {"name": "qwen2.5:0.5b"}]}`)
	}))
	defer srv.Close()

	if err := agent.NewOllamaAgent(srv.URL, "llama3.2").CheckAvailable(context.Background()); err != nil {
		t.Errorf("llama3.2 should match llama3.2:latest: %v", err)
	}
	err := agent.NewOllamaAgent(srv.URL, "mistral").CheckAvailable(context.Background())
	if err == nil || !strings.Contains(err.Error(), "mistral") {
		t.Errorf("missing model should be reported, got %v", err)
	}
}
