// Package agent drives a tool calling loop against Anthropic, backed by
// tools discovered from an MCP server. It keeps an append only transcript
// so follow up tasks can reference earlier answers.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/baalimago/chatbox/internal/mcp"
	"github.com/baalimago/chatbox/internal/models"
	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const maxTokens = 1024

// stoppedMsg mimics the reply of an agent which ran out of steps, it's
// treated as a normal answer rather than an error.
const stoppedMsg = "Agent stopped due to iteration limit or time limit."

const systemPromptFormat = `You are a Taiga project management assistant. You can manage projects, user stories, tasks, issues, epics, and milestones.

IMPORTANT AUTHENTICATION:
- If you are not authenticated, you MUST first call the 'login' tool to get a session_id
- If you have a session_id, DON'T login again
- session_id example: "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
- Use the session_id from login for all subsequent tool calls
- If you get authentication errors, try logging in again
- With SSE transport, the server maintains persistent HTTP connections and sessions in memory!

TAIGA CREDENTIALS:
- URL: %v
- Username: %v
- Password: %v

WORKFLOW:
1. If user asks for data that requires authentication (like listing projects), login first
2. Use the session_id from login response for all other tool calls
3. For project management tasks, break them down into logical steps
4. Always provide clear feedback about what you're doing

Available tools include login, logout, session_status, and full CRUD operations for projects, user stories, tasks, issues, epics, and milestones.`

// ToolCaller exposes the MCP operations the agent needs, implemented by
// mcp.Client.
type ToolCaller interface {
	Tools(ctx context.Context) ([]mcp.ToolSpec, error)
	Call(ctx context.Context, name string, args map[string]any) (string, error)
}

type Config struct {
	Model         string
	MaxSteps      int
	TaigaURL      string
	TaigaUsername string
	TaigaPassword string
}

func ConfigFromEnv() Config {
	return Config{
		Model:         utils.Getenv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		MaxSteps:      15,
		TaigaURL:      utils.Getenv("TAIGA_URL", "http://localhost:9000"),
		TaigaUsername: utils.Getenv("TAIGA_USERNAME", "admin"),
		TaigaPassword: utils.Getenv("TAIGA_PASSWORD", "admin"),
	}
}

type Agent struct {
	conf       Config
	client     anthropic.Client
	toolCaller ToolCaller
	tools      []anthropic.ToolUnionParam
	system     string
	chat       models.Chat
}

// New loads the remote tools and prints them, then returns an agent ready
// to process tasks.
func New(ctx context.Context, conf Config, toolCaller ToolCaller) (*Agent, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errors.New("Anthropic API key not configured. Please set ANTHROPIC_API_KEY environment variable")
	}
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := os.Getenv("ANTHROPIC_BASE_URL"); baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}

	specs, err := toolCaller.Tools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load MCP tools: %w", err)
	}
	ancli.Okf("successfully loaded %v MCP tools:\n", len(specs))
	for _, spec := range specs {
		ancli.Noticef("   • %v: %v\n", spec.Name, spec.Description)
	}

	return &Agent{
		conf:       conf,
		client:     anthropic.NewClient(clientOpts...),
		toolCaller: toolCaller,
		tools:      anthropicTools(specs),
		system:     fmt.Sprintf(systemPromptFormat, conf.TaigaURL, conf.TaigaUsername, conf.TaigaPassword),
		chat:       models.Chat{ID: "taiga-agent", Created: time.Now()},
	}, nil
}

func anthropicTools(specs []mcp.ToolSpec) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        spec.Name,
			Description: anthropic.String(spec.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: spec.InputSchema.Properties,
				Required:   spec.InputSchema.Required,
			},
		}})
	}
	return out
}

// Process runs one task through the tool loop and returns the final
// assistant text. The task and its outcome are added to the transcript,
// failed tasks record the error so the model can see what went wrong.
func (a *Agent) Process(ctx context.Context, task string) (string, error) {
	conv := a.conversation(task)
	var assistantText string
	for i := 0; i < a.conf.MaxSteps; i++ {
		msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.conf.Model),
			MaxTokens: int64(maxTokens),
			System:    []anthropic.TextBlockParam{{Text: a.system}},
			Messages:  conv,
			Tools:     a.tools,
		})
		if err != nil {
			err = fmt.Errorf("failed to create message: %w", err)
			a.remember(task, fmt.Sprintf("Got error: %v", err))
			return "", err
		}
		conv = append(conv, msg.ToParam())

		toolResults := []anthropic.ContentBlockParamUnion{}
		for _, block := range msg.Content {
			switch v := block.AsAny().(type) {
			case anthropic.TextBlock:
				if assistantText == "" {
					assistantText = v.Text
				} else {
					assistantText += "\n" + v.Text
				}
			case anthropic.ToolUseBlock:
				toolResults = append(toolResults, a.execTool(ctx, v))
			}
		}
		if len(toolResults) == 0 {
			a.remember(task, assistantText)
			return assistantText, nil
		}
		conv = append(conv, anthropic.NewUserMessage(toolResults...))
	}
	a.remember(task, stoppedMsg)
	return stoppedMsg, nil
}

func (a *Agent) execTool(ctx context.Context, block anthropic.ToolUseBlock) anthropic.ContentBlockParamUnion {
	ancli.Noticef("calling tool: '%v'\n", block.Name)
	var args map[string]any
	if err := json.Unmarshal([]byte(block.JSON.Input.Raw()), &args); err != nil {
		return anthropic.NewToolResultBlock(block.ID, fmt.Sprintf("failed to decode tool input: %v", err), true)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.Noticef("tool input: %v\n", debug.IndentedJsonFmt(args))
	}
	result, err := a.toolCaller.Call(ctx, block.Name, args)
	if err != nil {
		return anthropic.NewToolResultBlock(block.ID, err.Error(), true)
	}
	return anthropic.NewToolResultBlock(block.ID, result, false)
}

// conversation renders the transcript as messages API params, the new task
// appended as the latest user turn. The transcript only ever holds plain
// text turns, tool blocks live in the per task conversation.
func (a *Agent) conversation(task string) []anthropic.MessageParam {
	conv := make([]anthropic.MessageParam, 0, len(a.chat.Messages)+1)
	for _, msg := range a.chat.Messages {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == "assistant" {
			conv = append(conv, anthropic.NewAssistantMessage(block))
		} else {
			conv = append(conv, anthropic.NewUserMessage(block))
		}
	}
	return append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(task)))
}

// remember appends the finished exchange to the transcript. Empty
// assistant replies are skipped since the messages API rejects empty text
// blocks on the next call.
func (a *Agent) remember(task, reply string) {
	a.chat.Append("user", task)
	if reply != "" {
		a.chat.Append("assistant", reply)
	}
}
