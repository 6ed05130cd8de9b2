package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baalimago/chatbox/internal/utils"
)

// TaskProcessor runs one task to completion, implemented by agent.Agent.
type TaskProcessor interface {
	Process(ctx context.Context, task string) (string, error)
}

// TaigaAgent is the interactive loop of the taiga agent. Tasks run through
// the processor one at a time, failed tasks are reported and the loop
// moves on.
type TaigaAgent struct {
	agent TaskProcessor

	in  io.Reader
	out io.Writer
}

func NewTaigaAgent(agent TaskProcessor, in io.Reader, out io.Writer) *TaigaAgent {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &TaigaAgent{
		agent: agent,
		in:    in,
		out:   out,
	}
}

// Run blocks until the user quits or the input is exhausted.
func (ta *TaigaAgent) Run(ctx context.Context) error {
	fmt.Fprintln(ta.out, "Taiga MCP agent is ready!")
	fmt.Fprintln(ta.out, "Try commands like:")
	fmt.Fprintln(ta.out, "   - 'show me all projects'")
	fmt.Fprintln(ta.out, `   - 'create a new project called "My Project"'`)
	fmt.Fprintln(ta.out, "   - 'list user stories in project 1'")
	fmt.Fprintln(ta.out, `   - 'create a user story "As a user I want..." in project 1'`)
	fmt.Fprintf(ta.out, "   - Type 'quit' or 'exit' to stop\n\n")

	reader := bufio.NewReader(ta.in)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(ta.out, "Enter your task: ")
		input, ok := readLine(reader)
		if !ok {
			return nil
		}
		if isQuitword(input) {
			return utils.ErrUserInitiatedExit
		}
		if input == "" {
			continue
		}
		fmt.Fprintf(ta.out, "Processing: %v\n", input)
		result, err := ta.agent.Process(ctx, input)
		if err != nil {
			fmt.Fprintf(ta.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(ta.out, "\nResult:\n%v\n", result)
		fmt.Fprintln(ta.out, strings.Repeat("-", 100))
	}
}
