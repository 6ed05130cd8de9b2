package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	anthropicDefaultModel = "claude-3-haiku-20240307"

	// anthropicMaxTokens caps replies from the messages API, which requires
	// an explicit limit on every request.
	anthropicMaxTokens = 1024
)

// Anthropic completes prompts against the Anthropic messages API.
type Anthropic struct {
	Model string

	client anthropic.Client
}

// NewAnthropic creates an Anthropic completer. ANTHROPIC_API_KEY must be
// set. Extra request options are appended last, which lets tests redirect
// the client.
func NewAnthropic(model string, opts ...option.RequestOption) (*Anthropic, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errors.New("Anthropic API key not configured. Please set ANTHROPIC_API_KEY environment variable")
	}
	if model == "" {
		model = anthropicDefaultModel
	}
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := os.Getenv("ANTHROPIC_BASE_URL"); baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)
	return &Anthropic{
		Model:  model,
		client: anthropic.NewClient(clientOpts...),
	}, nil
}

func (a *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return sb.String(), nil
}
