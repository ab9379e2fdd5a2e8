package translate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-5-mini"

type openAIBackend struct {
	client openai.Client
	model  string
}

// NewOpenAITranslator creates a translator backed by OpenAI Chat Completions
func NewOpenAITranslator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*BatchTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	b := &openAIBackend{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
	return newBatchTranslator(b, opts), nil
}

func (b *openAIBackend) name() string { return "OpenAI" }

func (b *openAIBackend) complete(ctx context.Context, prompt string) (string, error) {
	completion, err := b.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: b.model,
		},
	)
	if err != nil {
		return "", err
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return completion.Choices[0].Message.Content, nil
}
