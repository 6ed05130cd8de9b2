package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/chatbox/internal/repl"
	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/chatbox/internal/version"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/joho/godotenv"
)

const usage = `chatbox - terminal chat across ollama, openai and anthropic

Prerequisites:
  - For auto: Ollama running locally - https://ollama.com (ollama serve)
  - For gpt: Set the OPENAI_API_KEY environment variable to your OpenAI API key
  - For claude: Set the ANTHROPIC_API_KEY environment variable to your Anthropic API key
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: chatbox [command]

Commands:
  h|help                        Display this help message
  v|version                     Display the version

In-chat commands:
  switch                        Change the active provider (auto, gpt, claude)
  quit|exit|q                   End the conversation

The active provider starts at auto. API keys are only needed once the
matching provider is selected.
`

func run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "h", "help", "-h", "--help":
			fmt.Print(usage)
			return 0
		case "v", "version":
			if err := version.Print(os.Stdout); err != nil {
				ancli.Errf("failed to print version: %v\n", err)
				return 1
			}
			return 0
		default:
			ancli.Errf("unknown command: '%v'\n", args[0])
			fmt.Print(usage)
			return 1
		}
	}
	_ = godotenv.Load()

	if !utils.IsInteractive(os.Stdin) {
		ancli.Noticef("stdin is not a terminal, reading prompts from pipe\n")
	}

	err := repl.NewMultichat(nil, nil).Run(context.Background())
	if errors.Is(err, utils.ErrUserInitiatedExit) {
		ancli.Okf("Goodbye!\n")
		return 0
	}
	if err != nil {
		ancli.Errf("failed to run: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}
