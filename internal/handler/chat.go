package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coinsage/coinsage/internal/agent"
	"github.com/coinsage/coinsage/internal/assistant"
	"github.com/coinsage/coinsage/internal/config"
	"github.com/coinsage/coinsage/internal/models"
	"github.com/coinsage/coinsage/internal/tools"
)

// ChatHandler handles POST /api/v1/chat. Each request is a fresh session;
// the HTTP surface is stateless.
type ChatHandler struct {
	agent    agent.Agent
	registry []tools.Tool
}

func NewChatHandler(a agent.Agent, registry []tools.Tool) *ChatHandler {
	return &ChatHandler{agent: a, registry: registry}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.SetDefaults()

	if req.Prompt == "" {
		models.WriteError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if len(req.Prompt) > config.DefaultMaxPromptLength {
		models.WriteError(w, http.StatusBadRequest, "prompt too long")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(req.Timeout)*time.Second)
	defer cancel()

	session := assistant.New(h.agent, h.registry)
	res, err := session.Ask(ctx, req.Prompt)
	if err != nil {
		models.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	models.WriteJSON(w, http.StatusOK, models.ChatResponse{
		Status:    "success",
		Prompt:    req.Prompt,
		Answer:    res.Text,
		ToolsUsed: res.ToolsUsed,
	})
}
