package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coinsage/coinsage/internal/agent"
	"github.com/coinsage/coinsage/internal/assistant"
	"github.com/coinsage/coinsage/internal/cli"
	"github.com/coinsage/coinsage/internal/compare"
	"github.com/coinsage/coinsage/internal/config"
	"github.com/coinsage/coinsage/internal/market"
	"github.com/coinsage/coinsage/internal/server"
	"github.com/coinsage/coinsage/internal/tools"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := "chat"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("coinsage", flag.ExitOnError)
	provider := fs.String("provider", "", "LLM provider: ollama or anthropic (overrides config)")
	model := fs.String("model", "", "model name (overrides config)")
	promptsFile := fs.String("prompts", "", "prompts file for compare mode, one prompt per line")
	fs.Usage = usage
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *provider != "" {
		cfg.Provider = strings.ToLower(*provider)
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *promptsFile != "" {
		cfg.PromptsFile = *promptsFile
	}

	setupLogging(cfg.LogLevel, mode)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	m := market.NewClient(cfg.CMCBaseURL, cfg.CMCAPIKey, time.Duration(cfg.CMCTimeout)*time.Second)
	a, err := buildAgent(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("provider setup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("mode", mode).
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Str("cmc_key", cfg.MaskedCMCKey()).
		Msg("starting")

	switch mode {
	case "chat":
		err = runChat(ctx, cfg, m, a)
	case "serve":
		err = server.New(cfg, m, a).Run(ctx)
	case "compare":
		err = runCompare(ctx, cfg, m, a)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil && err != context.Canceled {
		log.Fatal().Err(err).Str("mode", mode).Msg("exited with error")
	}
}

func buildAgent(cfg *config.Config) (agent.Agent, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return agent.NewAnthropicAgent(cfg.AnthropicAPIKey, cfg.Model, cfg.AnthropicBaseURL), nil
	case config.ProviderOllama:
		return agent.NewOllamaAgent(cfg.OllamaHost, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func runChat(ctx context.Context, cfg *config.Config, m *market.Client, a agent.Agent) error {
	// Fail fast when the local model isn't there instead of erroring on
	// the first prompt.
	if oa, ok := a.(*agent.OllamaAgent); ok {
		checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := oa.CheckAvailable(checkCtx)
		cancel()
		if err != nil {
			return err
		}
	}

	session := assistant.New(a, tools.Registry(m))
	repl := cli.NewREPL(session, time.Duration(cfg.AgentTimeout)*time.Second)
	repl.PrintBanner()
	return repl.Run(ctx)
}

func runCompare(ctx context.Context, cfg *config.Config, m *market.Client, a agent.Agent) error {
	prompts := compare.DefaultPrompts
	if cfg.PromptsFile != "" {
		loaded, err := compare.LoadPrompts(cfg.PromptsFile)
		if err != nil {
			return err
		}
		prompts = loaded
	}

	runner := compare.NewRunner(a, tools.Registry(m), cfg.Model, cfg.ResultsDir)
	path, err := runner.Run(ctx, prompts)
	if err != nil {
		return err
	}
	fmt.Printf("Results saved to %s\n", path)
	return nil
}

func setupLogging(level, mode string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// The chat loop shares stdout with the user; keep logs human-readable
	// there and JSON everywhere else.
	if mode == "chat" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: coinsage [mode] [flags]

Modes:
  chat      interactive assistant (default)
  serve     HTTP API
  compare   replay the test prompts against the bare model and the
            tool-augmented assistant, writing a JSON report

Flags:
  -provider string   ollama or anthropic
  -model string      model name
  -prompts string    prompts file for compare mode

Environment:
  COINMARKETCAP_API_KEY   CoinMarketCap API key (required)
  OLLAMA_HOST             Ollama address (default http://localhost:11434)
  ANTHROPIC_API_KEY       required when -provider=anthropic
  COINSAGE_CONFIG         path to a JSON config file
`)
}
