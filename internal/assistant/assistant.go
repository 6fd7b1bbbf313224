// Package assistant ties a provider agent to the market tool registry and
// keeps per-session conversation state.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/coinsage/coinsage/internal/agent"
	"github.com/coinsage/coinsage/internal/tools"
	"github.com/rs/zerolog/log"
)

const systemPrompt = `You are a helpful cryptocurrency assistant. You can engage in general conversation about cryptocurrencies, blockchain, and digital assets, and you have tools for live market data.

When users ask about cryptocurrency prices, first determine whether they want the CURRENT price (no date mentioned) or a HISTORICAL price (any date or time period mentioned).

- CURRENT price: identify the ticker symbol (e.g. "Bitcoin" -> "BTC") and call get_crypto_price.
- Any price question that mentions a date or time period: call get_crypto_price_historical. Never answer with the current price when a date is mentioned. Pass relative dates like "yesterday", "2 days ago" or "last week" through as-is; do not convert them yourself. Historical prices are only available for the past 30 days.
- Top movers, gainers, losers, best or worst performers: call get_gainers_losers.
- The crypto Fear & Greed index (only when the question explicitly mentions crypto or cryptocurrency fear and greed): call get_fear_greed_latest, or get_fear_greed_historical when a date is given. The index history covers the past 500 days.

Do not use the fear and greed tools for general questions about market sentiment. If you are unsure of a cryptocurrency's symbol, ask the user for it. For all other questions, answer normally without tools. After a tool returns data, summarize it in clear natural language with the concrete numbers.`

// maxHistoryTurns bounds session memory so long conversations don't grow
// the prompt without limit.
const maxHistoryTurns = 20

// Assistant is one chat session.
type Assistant struct {
	agent    agent.Agent
	registry []tools.Tool
	history  []agent.Message
}

func New(a agent.Agent, registry []tools.Tool) *Assistant {
	return &Assistant{agent: a, registry: registry}
}

// Ask runs one user prompt through the agent loop and records the exchange
// in the session history.
func (s *Assistant) Ask(ctx context.Context, prompt string) (*agent.Result, error) {
	msgs := append(append([]agent.Message{}, s.history...), agent.Message{
		Role:    agent.RoleUser,
		Content: prompt,
	})

	res, err := s.agent.Run(ctx, systemPrompt, msgs, s.registry)
	if err != nil {
		return nil, err
	}

	s.history = append(s.history,
		agent.Message{Role: agent.RoleUser, Content: prompt},
		agent.Message{Role: agent.RoleAssistant, Content: res.Text},
	)
	if len(s.history) > maxHistoryTurns*2 {
		s.history = s.history[len(s.history)-maxHistoryTurns*2:]
	}

	if len(res.ToolsUsed) > 0 {
		log.Debug().Strs("tools", res.ToolsUsed).Msg("prompt answered with tools")
	}
	return res, nil
}

// Reset clears the session history.
func (s *Assistant) Reset() {
	s.history = nil
}

// Tools returns the registry backing this session.
func (s *Assistant) Tools() []tools.Tool {
	return s.registry
}

// ToolHelp renders the registry as display text for the /tools command.
func ToolHelp(registry []tools.Tool) string {
	var sb strings.Builder
	sb.WriteString("Available tools:\n")
	for i, t := range registry {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, t.Name, t.Description)
	}
	return sb.String()
}
