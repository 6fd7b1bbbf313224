package tools

import "github.com/coinsage/coinsage/internal/market"

// Registry returns the full tool set backed by a market client, in the
// order they are presented to the model and listed by /tools.
func Registry(m *market.Client) []Tool {
	return []Tool{
		PriceLatestTool(m),
		PriceHistoricalTool(m),
		GainersLosersTool(m),
		FearGreedLatestTool(m),
		FearGreedHistoricalTool(m),
	}
}

// Find returns the tool with the given name, or false.
func Find(ts []Tool, name string) (Tool, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
