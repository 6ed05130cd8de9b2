package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baalimago/chatbox/internal/chain"
	"github.com/baalimago/chatbox/internal/providers"
	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// Invoker routes a question to a provider, implemented by chain.Service.
type Invoker interface {
	Invoke(ctx context.Context, question string, p providers.Provider, model string) (string, error)
}

// Multichat is a chat loop across all providers. The active provider starts
// at auto and is changed with the 'switch' command, chains are cached by
// the service between turns.
type Multichat struct {
	ai       Invoker
	provider providers.Provider

	in  io.Reader
	out io.Writer
}

func NewMultichat(in io.Reader, out io.Writer) *Multichat {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Multichat{
		ai:       chain.NewService(),
		provider: providers.Auto,
		in:       in,
		out:      out,
	}
}

// Run blocks until the user quits or the input is exhausted.
func (m *Multichat) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, "Multi-model AI chat")
	fmt.Fprintln(m.out, "Supports: Auto (Ollama), GPT (OpenAI), Claude (Anthropic)")
	fmt.Fprintf(m.out, "Type 'quit' to exit, 'switch' to change model\n\n")

	reader := bufio.NewReader(m.in)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(m.out, "Current model: %v\n", m.provider)
		fmt.Fprintf(m.out, "%v: ", ancli.ColoredMessage(ancli.CYAN, "You"))
		input, ok := readLine(reader)
		if !ok {
			return nil
		}
		if isQuitword(input) {
			return utils.ErrUserInitiatedExit
		}
		if strings.ToLower(input) == "switch" {
			m.switchProvider(reader)
			continue
		}
		if input == "" {
			fmt.Fprintln(m.out, "Please enter a question.")
			continue
		}
		fmt.Fprintln(m.out, "Thinking...")
		resp, err := m.ai.Invoke(ctx, input, m.provider, "")
		if err != nil {
			fmt.Fprintf(m.out, "%v\n\n", err)
			continue
		}
		fmt.Fprintf(m.out, "Assistant (%v): %v\n\n", m.provider, resp)
	}
}

func (m *Multichat) switchProvider(reader *bufio.Reader) {
	fmt.Fprintf(m.out, "Available providers: %v\n", providers.ValidString())
	fmt.Fprint(m.out, "Select provider: ")
	input, ok := readLine(reader)
	if !ok {
		return
	}
	p, err := providers.Parse(input)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid provider. Using current provider.")
		return
	}
	m.provider = p
	fmt.Fprintf(m.out, "Switched to %v\n", p)
}
