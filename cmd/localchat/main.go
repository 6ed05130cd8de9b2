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

const usage = `localchat - terminal chat against a local Ollama server

Prerequisites:
  - Ollama running locally - https://ollama.com (ollama serve)
  - The configured model pulled (default qwen3:8b): ollama pull qwen3:8b
  - (Optional) Set OLLAMA_BASE_URL to reach a non-default server address
  - (Optional) Set OLLAMA_DEFAULT_MODEL to chat with another model
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: localchat [command]

Commands:
  h|help                        Display this help message
  v|version                     Display the version

The chat reads prompts line by line. Type 'quit', 'exit' or 'q' to stop.
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

	lc, err := repl.NewLocalchat(nil, nil)
	if err != nil {
		ancli.Errf("failed to setup: %v\n", err)
		return 1
	}
	if !utils.IsInteractive(os.Stdin) {
		ancli.Noticef("stdin is not a terminal, reading prompts from pipe\n")
	}

	err = lc.Run(context.Background())
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
