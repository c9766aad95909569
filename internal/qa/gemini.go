package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini asks a Google Gemini model for a span and keeps the reply only
// if it is found in the context.
type Gemini struct {
	client   *genai.Client
	generate func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

func NewGemini(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: no API key provided")
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	model.SetTemperature(0)

	return &Gemini{
		client: client,
		generate: func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			return model.GenerateContent(ctx, genai.Text(prompt))
		},
	}, nil
}

func (e *Gemini) Answer(ctx context.Context, question, text string) (*Answer, error) {
	resp, err := e.generate(ctx, userPrompt(question, text))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	reply, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	span := groundSpan(reply, text)
	if span == "" {
		return nil, common.ErrorNoAnswer
	}
	return &Answer{Text: span, Score: 1}, nil
}

// Close releases the underlying client.
func (e *Gemini) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no response generated")
	}

	var sb strings.Builder
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String(), nil
}
