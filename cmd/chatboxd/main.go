package main

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/chatbox/internal/chain"
	"github.com/baalimago/chatbox/internal/server"
	"github.com/baalimago/chatbox/internal/version"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/joho/godotenv"
)

const usage = `chatboxd - http backend routing chat requests to ollama, openai and anthropic

Prerequisites:
  - For auto: Ollama running locally - https://ollama.com (ollama serve)
  - For gpt: Set the OPENAI_API_KEY environment variable to your OpenAI API key
  - For claude: Set the ANTHROPIC_API_KEY environment variable to your Anthropic API key

Usage: chatboxd [command]

Commands:
  h|help                        Display this help message
  v|version                     Display the version

Endpoints:
  GET  /health                  Health check
  GET  /api/models              Available providers and their key status
  POST /api/chat                Chat with a provider
  POST /api/chat/stream         Reserved, answers 501

Environment:
  CHATBOX_HOST                  Listen address (default 127.0.0.1)
  CHATBOX_PORT                  Listen port (default 5000)
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()

	srv := server.New(server.ConfigFromEnv(), chain.NewService())
	if err := srv.ListenAndServe(ctx); err != nil {
		ancli.Errf("failed to run: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}
