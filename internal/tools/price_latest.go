package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coinsage/coinsage/internal/market"
)

// PriceLatestTool returns the current USD quote for a cryptocurrency symbol.
func PriceLatestTool(m *market.Client) Tool {
	return Tool{
		Name:        "get_crypto_price",
		Description: "Get the current price of a cryptocurrency in USD, with market cap, 24h volume, and 24h/7d percent change. Use only when no date or time period is mentioned.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"symbol": map[string]interface{}{
					"type":        "string",
					"description": "Ticker symbol, e.g. BTC for Bitcoin, ETH for Ethereum",
				},
			},
			"required": []string{"symbol"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			var params struct {
				Symbol string `json:"symbol"`
			}
			if err := decodeInput(input, &params); err != nil {
				return "", err
			}
			if params.Symbol == "" {
				return "", fmt.Errorf("symbol is required")
			}

			quote, err := m.LatestQuote(ctx, strings.ToUpper(params.Symbol))
			if err != nil {
				return "", fmt.Errorf("latest quote: %w", err)
			}
			b, err := json.Marshal(quote)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
