package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coinsage/coinsage/internal/market"
)

// FearGreedLatestTool returns the current crypto Fear & Greed index.
func FearGreedLatestTool(m *market.Client) Tool {
	return Tool{
		Name:        "get_fear_greed_latest",
		Description: "Get the current crypto Fear & Greed index value and classification. Use only when the question explicitly asks about the crypto or cryptocurrency fear and greed index.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
			"required":   []string{},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			fg, err := m.FearGreedLatest(ctx)
			if err != nil {
				return "", fmt.Errorf("fear and greed: %w", err)
			}
			b, err := json.Marshal(fg)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
