package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/chatbox/internal/agent"
	"github.com/baalimago/chatbox/internal/mcp"
	"github.com/baalimago/chatbox/internal/repl"
	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/chatbox/internal/version"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/joho/godotenv"
)

const usage = `taiga-agent - natural language project management against a Taiga MCP server

Prerequisites:
  - Set the ANTHROPIC_API_KEY environment variable to your Anthropic API key
  - A Taiga MCP server with SSE transport, reachable at MCP_SERVER_URL
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: taiga-agent [command]

Commands:
  h|help                        Display this help message
  v|version                     Display the version

Environment:
  MCP_SERVER_URL                SSE endpoint of the MCP server (default http://localhost:8000/sse)
  ANTHROPIC_MODEL               Model driving the agent (default claude-sonnet-4-20250514)
  TAIGA_URL                     Taiga instance the tools operate on (default http://localhost:9000)
  TAIGA_USERNAME                Taiga login passed to the agent (default admin)
  TAIGA_PASSWORD                Taiga password passed to the agent (default admin)

Tasks are stated in plain language, e.g. 'show me all projects'. The agent
logs in through the server's own tools, the credentials never leave the
system prompt. Type 'quit' or 'exit' to stop.
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

	mcpConf := mcp.ConfigFromEnv()
	ancli.Noticef("connecting to SSE endpoint: '%v'\n", mcpConf.URL)
	client, err := mcp.Connect(ctx, mcpConf)
	if err != nil {
		ancli.Errf("failed to connect to MCP server via SSE at '%v': %v\n", mcpConf.URL, err)
		ancli.Noticef("make sure the MCP server is running and supports SSE transport\n")
		ancli.Noticef("expected SSE endpoint: '%v'\n", mcpConf.URL)
		return 1
	}
	defer client.Close()

	a, err := agent.New(ctx, agent.ConfigFromEnv(), client)
	if err != nil {
		ancli.Errf("failed to setup agent: %v\n", err)
		return 1
	}
	if !utils.IsInteractive(os.Stdin) {
		ancli.Noticef("stdin is not a terminal, reading tasks from pipe\n")
	}

	err = repl.NewTaigaAgent(a, nil, nil).Run(ctx)
	if errors.Is(err, utils.ErrUserInitiatedExit) {
		ancli.Okf("Goodbye!\n")
		return 0
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		ancli.Errf("failed to run: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}
