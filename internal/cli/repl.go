// Package cli is the interactive chat loop.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/coinsage/coinsage/internal/assistant"
	"github.com/dimiro1/banner"
	"github.com/fatih/color"
)

const bannerTemplate = "{{ .Title \"coinsage\" \"\" 0 }}\nAsk me anything about cryptocurrencies. /tools lists the tools, /exit quits.\n\n"

// REPL reads prompts from in and prints assistant answers to out.
type REPL struct {
	session *assistant.Assistant
	in      io.Reader
	out     io.Writer
	timeout time.Duration
}

func NewREPL(session *assistant.Assistant, timeout time.Duration) *REPL {
	return &REPL{
		session: session,
		in:      os.Stdin,
		out:     os.Stdout,
		timeout: timeout,
	}
}

// PrintBanner renders the startup banner, honoring NO_COLOR environments
// through the banner package itself.
func (r *REPL) PrintBanner() {
	banner.Init(r.out, true, true, bytes.NewBufferString(bannerTemplate))
}

// Run loops until /exit or EOF. The context bounds the whole session;
// each prompt additionally gets the per-prompt timeout.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	prompt := color.New(color.FgCyan, color.Bold).SprintFunc()
	errText := color.New(color.FgRed).SprintFunc()
	toolNote := color.New(color.FgYellow).SprintFunc()

	for {
		fmt.Fprintf(r.out, "\n%s ", prompt("You:"))
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "/exit", "exit":
			return nil
		case "/tools", "tools":
			fmt.Fprintln(r.out, assistant.ToolHelp(r.session.Tools()))
			continue
		case "/reset":
			r.session.Reset()
			fmt.Fprintln(r.out, "Conversation history cleared.")
			continue
		}

		promptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		res, err := r.session.Ask(promptCtx, line)
		cancel()
		if err != nil {
			fmt.Fprintf(r.out, "\nAssistant: %s\n", errText("error: "+err.Error()))
			continue
		}

		fmt.Fprintf(r.out, "\nAssistant: %s\n", res.Text)
		if len(res.ToolsUsed) > 0 {
			fmt.Fprintf(r.out, "%s\n", toolNote("[used "+strings.Join(res.ToolsUsed, ", ")+"]"))
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
