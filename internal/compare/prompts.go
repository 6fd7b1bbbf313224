package compare

// DefaultPrompts covers every tool plus two control prompts that should be
// answered without any tool at all.
var DefaultPrompts = []string{
	// Current price queries
	"What is the current price of Bitcoin?",
	"How much does ETH cost right now?",
	"What is litecoin trading at on Coinbase?",

	// Historical price queries
	"What was the price of ethereum yesterday?",
	"What was HYPE trading at 3 days ago?",
	"What was BTC trading at on 2025/02/19?",

	// Market movers queries
	"What are the top crypto gainers and losers today?",
	"Which cryptocurrencies have the most movement right now?",

	// Fear and Greed queries
	"What's the current crypto fear and greed index?",
	"What was the cryptocurrency fear and greed index on 2025-1-01?",

	// These queries should not trigger any tools
	"Tell me a bit about how bitcoin mining works, and the price at which it would be profitable to mine it at 10c kwh",
	"What is the difference between bitcoin and altcoins?",
}
