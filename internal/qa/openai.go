package qa

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/sashabaranov/go-openai"
)

// OpenAI asks an OpenAI-compatible chat completion endpoint for a span
// and keeps the reply only if it is actually found in the context.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds an engine for model. An empty baseURL uses the public
// OpenAI API; set it to point at a local or proxy server.
func NewOpenAI(baseURL, apiKey, model string) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (e *OpenAI) Answer(ctx context.Context, question, text string) (*Answer, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(question, text)},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: no response generated")
	}

	span := groundSpan(resp.Choices[0].Message.Content, text)
	if span == "" {
		return nil, common.ErrorNoAnswer
	}
	return &Answer{Text: span, Score: 1}, nil
}
