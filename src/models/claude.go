package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type ClaudeConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

type ClaudeLLM struct {
	Client    anthropic.Client
	Model     anthropic.Model
	MaxTokens int64
}

func NewClaudeLLM(cfg ClaudeConfig) (*ClaudeLLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude: api key is required")
	}
	model := anthropic.Model(cfg.Model)
	if cfg.Model == "" {
		model = anthropic.ModelClaude3_7SonnetLatest
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &ClaudeLLM{Client: client, Model: model, MaxTokens: maxTokens}, nil
}

func (c *ClaudeLLM) params(prompt string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
}

func (c *ClaudeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.Client.Messages.New(ctx, c.params(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: claude: %v", ErrCompletionFailed, err)
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (c *ClaudeLLM) GenerateStream(ctx context.Context, prompt string) (<-chan StreamChunk, error) {
	stream := c.Client.Messages.NewStreaming(ctx, c.params(prompt))

	ch := make(chan StreamChunk, streamBuffer)
	go func() {
		defer close(ch)
		var sb strings.Builder
		for stream.Next() {
			event := stream.Current()
			switch ev := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				switch delta := ev.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					if delta.Text != "" {
						sb.WriteString(delta.Text)
						ch <- StreamChunk{Delta: delta.Text}
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			ch <- StreamChunk{Done: true, FullText: sb.String(), Err: fmt.Errorf("%w: claude: %v", ErrCompletionFailed, err)}
			return
		}
		ch <- StreamChunk{Done: true, FullText: sb.String()}
	}()
	return ch, nil
}

var _ Model = (*ClaudeLLM)(nil)
