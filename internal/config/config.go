package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server (serve mode)
	Host      string `json:"host"`
	Port      int    `json:"port"`
	APIPrefix string `json:"api_prefix"`
	LogLevel  string `json:"log_level"`

	// Auth (serve mode)
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting (serve mode)
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// CoinMarketCap
	CMCAPIKey  string `json:"cmc_api_key"`
	CMCBaseURL string `json:"cmc_base_url"`
	CMCTimeout int    `json:"cmc_timeout"` // seconds

	// LLM provider: "ollama" (default) or "anthropic"
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	OllamaHost       string `json:"ollama_host"`
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicBaseURL string `json:"anthropic_base_url"` // override for compatible proxies
	AgentTimeout     int    `json:"agent_timeout"`      // seconds per prompt

	// Compare harness
	ResultsDir  string `json:"results_dir"`
	PromptsFile string `json:"prompts_file"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		APIKeyHeader:       "X-API-Key",
		EnableAuth:         true,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		CMCBaseURL:         DefaultCMCBaseURL,
		CMCTimeout:         DefaultCMCTimeout,
		Provider:           DefaultProvider,
		OllamaHost:         DefaultOllamaHost,
		AgentTimeout:       DefaultAgentTimeout,
		ResultsDir:         DefaultResultsDir,
	}

	// Load from JSON config file if specified
	if path := getEnv("COINSAGE_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	if cfg.Model == "" {
		cfg.Model = defaultModelFor(cfg.Provider)
	}

	return cfg, nil
}

// Validate checks the settings a chat or compare run cannot work without.
func (c *Config) Validate() error {
	if c.CMCAPIKey == "" {
		return fmt.Errorf("COINMARKETCAP_API_KEY is not set")
	}
	switch c.Provider {
	case ProviderOllama:
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when provider is %q", ProviderAnthropic)
		}
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", c.Provider, ProviderOllama, ProviderAnthropic)
	}
	return nil
}

// MaskedCMCKey returns the API key with the middle elided, for startup logs.
func (c *Config) MaskedCMCKey() string {
	k := c.CMCAPIKey
	if len(k) < 12 {
		return "***"
	}
	return k[:5] + "..." + k[len(k)-5:]
}

func defaultModelFor(provider string) string {
	if provider == ProviderAnthropic {
		return DefaultAnthropicModel
	}
	return DefaultOllamaModel
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("COINSAGE_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("COINSAGE_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("COINSAGE_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("COINSAGE_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("COINMARKETCAP_API_KEY", ""); v != "" {
		cfg.CMCAPIKey = v
	}
	if v := getEnv("COINMARKETCAP_BASE_URL", ""); v != "" {
		cfg.CMCBaseURL = v
	}
	if v := getEnv("COINSAGE_PROVIDER", ""); v != "" {
		cfg.Provider = strings.ToLower(v)
	}
	if v := getEnv("COINSAGE_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("OLLAMA_HOST", ""); v != "" {
		cfg.OllamaHost = v
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("COINSAGE_RESULTS_DIR", ""); v != "" {
		cfg.ResultsDir = v
	}
	if v := getEnv("COINSAGE_PROMPTS_FILE", ""); v != "" {
		cfg.PromptsFile = v
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("COINSAGE_AGENT_TIMEOUT", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.AgentTimeout = t
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
