// Package compare replays a prompt list through the bare model and the
// tool-augmented assistant and records both answers for side-by-side
// review.
package compare

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coinsage/coinsage/internal/agent"
	"github.com/coinsage/coinsage/internal/assistant"
	"github.com/coinsage/coinsage/internal/tools"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Entry is one prompt's pair of answers.
type Entry struct {
	Prompt            string   `json:"prompt"`
	BasicResponse     string   `json:"basic_response"`
	AugmentedResponse string   `json:"augmented_response"`
	ToolsUsed         []string `json:"tools_used,omitempty"`
}

// Report is the file written at the end of a run.
type Report struct {
	RunID      string  `json:"run_id"`
	Model      string  `json:"model"`
	StartedAt  string  `json:"started_at"`
	FinishedAt string  `json:"finished_at"`
	Results    []Entry `json:"results"`
}

// Runner drives one comparison run.
type Runner struct {
	agent      agent.Agent
	registry   []tools.Tool
	model      string
	resultsDir string
}

func NewRunner(a agent.Agent, registry []tools.Tool, model, resultsDir string) *Runner {
	return &Runner{
		agent:      a,
		registry:   registry,
		model:      model,
		resultsDir: resultsDir,
	}
}

// LoadPrompts reads one prompt per non-empty line; lines starting with #
// are comments.
func LoadPrompts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	var prompts []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("prompts file %s is empty", path)
	}
	return prompts, nil
}

// Run executes the comparison and returns the path of the written report.
// Each prompt runs against a fresh assistant session so earlier answers
// can't leak into later ones.
func (r *Runner) Run(ctx context.Context, prompts []string) (string, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Model:     r.model,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for i, prompt := range prompts {
		log.Info().
			Int("prompt", i+1).
			Int("total", len(prompts)).
			Str("text", prompt).
			Msg("comparing")

		entry := Entry{Prompt: prompt}

		basic, err := r.agent.Complete(ctx, prompt)
		if err != nil {
			basic = "Error: " + err.Error()
		}
		entry.BasicResponse = basic

		session := assistant.New(r.agent, r.registry)
		res, err := session.Ask(ctx, prompt)
		if err != nil {
			entry.AugmentedResponse = "Error: " + err.Error()
		} else {
			entry.AugmentedResponse = res.Text
			entry.ToolsUsed = res.ToolsUsed
		}

		report.Results = append(report.Results, entry)

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	report.FinishedAt = time.Now().UTC().Format(time.RFC3339)
	return r.write(report)
}

func (r *Runner) write(report *Report) (string, error) {
	if err := os.MkdirAll(r.resultsDir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	name := fmt.Sprintf("comparison_results_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(r.resultsDir, name)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	log.Info().Str("path", path).Int("prompts", len(report.Results)).Msg("comparison report written")
	return path, nil
}
