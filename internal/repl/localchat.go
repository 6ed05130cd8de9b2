package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/baalimago/chatbox/internal/chain"
	"github.com/baalimago/chatbox/internal/providers"
	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// Localchat is a chat loop against a local Ollama server only. No api keys,
// no provider switching.
type Localchat struct {
	chain *chain.Chain
	model string

	in  io.Reader
	out io.Writer
}

func NewLocalchat(in io.Reader, out io.Writer) (*Localchat, error) {
	ollama, err := providers.NewOllama("")
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama completer: %w", err)
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Localchat{
		chain: chain.New(chain.NewTemplate(""), ollama),
		model: ollama.Model,
		in:    in,
		out:   out,
	}, nil
}

// Run blocks until the user quits or the input is exhausted.
func (lc *Localchat) Run(ctx context.Context) error {
	fmt.Fprintln(lc.out, "Welcome to chatbox local chat!")
	fmt.Fprintf(lc.out, "Using model: %v\n", lc.model)
	fmt.Fprintf(lc.out, "Type 'quit', 'exit', or 'q' to stop the conversation.\n\n")

	reader := bufio.NewReader(lc.in)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(lc.out, "%v: ", ancli.ColoredMessage(ancli.CYAN, "You"))
		input, ok := readLine(reader)
		if !ok {
			return nil
		}
		if isQuitword(input) {
			return utils.ErrUserInitiatedExit
		}
		if input == "" {
			fmt.Fprintln(lc.out, "Please enter a question or type 'quit' to exit.")
			continue
		}
		fmt.Fprintln(lc.out, "Thinking...")
		resp, err := lc.chain.Invoke(ctx, input)
		if err != nil {
			fmt.Fprintf(lc.out, "Error getting response: %v\n", err)
			fmt.Fprintf(lc.out, "Make sure Ollama is running and the %v model is available.\n\n", lc.model)
			continue
		}
		fmt.Fprintf(lc.out, "Assistant: %v\n\n", resp)
	}
}
