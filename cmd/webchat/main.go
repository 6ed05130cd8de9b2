package main

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/chatbox/internal/version"
	"github.com/baalimago/chatbox/internal/webui"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/joho/godotenv"
)

const usage = `webchat - browser ui for the chatbox backend

Prerequisites:
  - A running chatboxd, reachable at CHATBOX_HOST:CHATBOX_PORT

Usage: webchat [command]

Commands:
  h|help                        Display this help message
  v|version                     Display the version

Environment:
  WEBCHAT_PORT                  Listen port of the ui (default 7860)
  CHATBOX_HOST                  Backend address (default 127.0.0.1)
  CHATBOX_PORT                  Backend port (default 5000)
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

	if err := webui.New(webui.ConfigFromEnv()).ListenAndServe(ctx); err != nil {
		ancli.Errf("failed to run: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}
