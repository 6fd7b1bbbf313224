package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coinsage/coinsage/internal/config"
	"github.com/coinsage/coinsage/internal/dates"
	"github.com/coinsage/coinsage/internal/market"
)

// PriceHistoricalTool returns the price of a cryptocurrency on a past date
// within the documented 30-day window. Relative date expressions are passed
// through by the model and resolved here.
func PriceHistoricalTool(m *market.Client) Tool {
	return Tool{
		Name:        "get_crypto_price_historical",
		Description: "Get the price of a cryptocurrency on a specific past date (within the last 30 days). Use whenever the question mentions any date or time period. The date may be relative ('yesterday', '3 days ago', 'last week') or absolute (YYYY-MM-DD, MM/DD/YYYY); pass relative expressions through as-is.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"symbol": map[string]interface{}{
					"type":        "string",
					"description": "Ticker symbol, e.g. BTC for Bitcoin",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "The date, relative ('yesterday', '2 days ago', 'last week') or absolute ('2025-02-19', '3/10/2025')",
				},
			},
			"required": []string{"symbol", "date"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			var params struct {
				Symbol string `json:"symbol"`
				Date   string `json:"date"`
			}
			if err := decodeInput(input, &params); err != nil {
				return "", err
			}
			if params.Symbol == "" || params.Date == "" {
				return "", fmt.Errorf("symbol and date are required")
			}

			parsed, err := dates.ParsePast(params.Date, time.Now(), config.MaxHistoricalPriceDays)
			if err != nil {
				return "", fmt.Errorf("historical prices: %w", err)
			}

			price, err := m.HistoricalQuote(ctx, strings.ToUpper(params.Symbol), parsed.Time)
			if err != nil {
				return "", fmt.Errorf("historical quote: %w", err)
			}
			b, err := json.Marshal(price)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
