package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coinsage/coinsage/internal/config"
	"github.com/coinsage/coinsage/internal/market"
)

// GainersLosersTool reports the top 5 gainers and losers over the last 24
// hours among the top 100 coins by market cap.
func GainersLosersTool(m *market.Client) Tool {
	return Tool{
		Name:        "get_gainers_losers",
		Description: "Get the biggest cryptocurrency gainers and losers of the last 24 hours, from the top 100 coins by market cap. Use for questions about top movers, best or worst performers.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
			"required":   []string{},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			movers, err := m.TopMovers(ctx, config.GainersLosersUniverse, config.GainersLosersTopN)
			if err != nil {
				return "", fmt.Errorf("top movers: %w", err)
			}
			b, err := json.Marshal(movers)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
