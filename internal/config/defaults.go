package config

const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8000
	DefaultAPIPrefix = "/api/v1"
	DefaultLogLevel  = "info"

	DefaultRateLimitPerMinute = 60

	DefaultCMCBaseURL = "https://pro-api.coinmarketcap.com"
	DefaultCMCTimeout = 30 // seconds

	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"

	DefaultProvider       = ProviderOllama
	DefaultOllamaHost     = "http://localhost:11434"
	DefaultOllamaModel    = "llama3.2"
	DefaultAnthropicModel = "claude-sonnet-4-6"

	DefaultAgentTimeout = 120 // seconds

	DefaultResultsDir = "test_results"

	DefaultMaxPromptLength = 2000

	// Documented CoinMarketCap lookback windows.
	MaxHistoricalPriceDays  = 30
	MaxFearGreedHistoryDays = 500
	GainersLosersUniverse   = 100
	GainersLosersTopN       = 5
)
