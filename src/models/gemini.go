package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

type GeminiLLM struct {
	Client *genai.Client
	Model  string
}

func NewGeminiLLM(ctx context.Context, cfg GeminiConfig) (*GeminiLLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-pro"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiLLM{Client: client, Model: model}, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.Client.GenerativeModel(g.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrCompletionFailed, err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: gemini: empty response", ErrCompletionFailed)
	}
	return text, nil
}

func (g *GeminiLLM) GenerateStream(ctx context.Context, prompt string) (<-chan StreamChunk, error) {
	model := g.Client.GenerativeModel(g.Model)
	iter := model.GenerateContentStream(ctx, genai.Text(prompt))

	ch := make(chan StreamChunk, streamBuffer)
	go func() {
		defer close(ch)
		var sb strings.Builder
		for {
			resp, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				ch <- StreamChunk{Done: true, FullText: sb.String()}
				return
			}
			if err != nil {
				ch <- StreamChunk{Done: true, FullText: sb.String(), Err: fmt.Errorf("%w: gemini: %v", ErrCompletionFailed, err)}
				return
			}
			if delta := responseText(resp); delta != "" {
				sb.WriteString(delta)
				ch <- StreamChunk{Delta: delta}
			}
		}
	}()
	return ch, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// Close releases the underlying API client.
func (g *GeminiLLM) Close() error {
	if g == nil || g.Client == nil {
		return nil
	}
	return g.Client.Close()
}

var _ Model = (*GeminiLLM)(nil)
