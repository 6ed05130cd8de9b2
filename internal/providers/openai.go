package providers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/chatbox/internal/utils"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openaiDefaultBaseURL = "https://api.openai.com/v1"
	openaiDefaultModel   = "gpt-3.5-turbo"
)

// OpenAI completes prompts against the OpenAI chat completions API.
type OpenAI struct {
	Model string

	client openai.Client
}

// NewOpenAI creates an OpenAI completer. OPENAI_API_KEY must be set. Extra
// request options are appended after the key and base url, which lets tests
// redirect the client.
func NewOpenAI(model string, opts ...option.RequestOption) (*OpenAI, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OpenAI API key not configured. Please set OPENAI_API_KEY environment variable")
	}
	if model == "" {
		model = openaiDefaultModel
	}
	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(utils.Getenv("OPENAI_BASE_URL", openaiDefaultBaseURL)),
	}
	clientOpts = append(clientOpts, opts...)
	return &OpenAI{
		Model:  model,
		client: openai.NewClient(clientOpts...),
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion contained no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
