package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coinsage/coinsage/internal/config"
	"github.com/coinsage/coinsage/internal/dates"
	"github.com/coinsage/coinsage/internal/market"
)

// FearGreedHistoricalTool returns the crypto Fear & Greed index for a past
// date within the documented 500-day window.
func FearGreedHistoricalTool(m *market.Client) Tool {
	return Tool{
		Name:        "get_fear_greed_historical",
		Description: "Get the crypto Fear & Greed index for a specific past date (within the last 500 days). Use only when the question explicitly asks about the crypto fear and greed index on a date.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "The date, relative ('last week') or absolute ('2025-01-01', '11/01/2024')",
				},
			},
			"required": []string{"date"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			var params struct {
				Date string `json:"date"`
			}
			if err := decodeInput(input, &params); err != nil {
				return "", err
			}
			if params.Date == "" {
				return "", fmt.Errorf("date is required")
			}

			parsed, err := dates.ParsePast(params.Date, time.Now(), config.MaxFearGreedHistoryDays)
			if err != nil {
				return "", fmt.Errorf("fear and greed history: %w", err)
			}

			fg, err := m.FearGreedOn(ctx, parsed.Time, config.MaxFearGreedHistoryDays)
			if err != nil {
				return "", fmt.Errorf("fear and greed history: %w", err)
			}
			b, err := json.Marshal(fg)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
