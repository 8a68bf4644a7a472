package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig selects either the public OpenAI API (BaseURL empty) or an
// Azure OpenAI deployment, matching the hosted setup the tutoring service
// runs against.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // Azure resource endpoint; empty for api.openai.com
	Deployment  string // Azure deployment name; ignored for public API
	APIVersion  string // defaults to 2023-05-15
	Model       string
	Temperature float32
}

type OpenAILLM struct {
	Client      *openai.Client
	Model       string
	Temperature float32
}

func NewOpenAILLM(cfg OpenAIConfig) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	var client *openai.Client
	if cfg.BaseURL != "" {
		azure := openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.APIVersion != "" {
			azure.APIVersion = cfg.APIVersion
		} else {
			azure.APIVersion = "2023-05-15"
		}
		if cfg.Deployment != "" {
			deployment := cfg.Deployment
			azure.AzureModelMapperFunc = func(string) string { return deployment }
		}
		client = openai.NewClientWithConfig(azure)
	} else {
		client = openai.NewClient(cfg.APIKey)
	}
	return &OpenAILLM{Client: client, Model: model, Temperature: temperature}, nil
}

func (o *OpenAILLM) request(prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       o.Model,
		Temperature: o.Temperature,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	}
}

func (o *OpenAILLM) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.Client.CreateChatCompletion(ctx, o.request(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai: empty response", ErrCompletionFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateStream drives the SSE stream in a background goroutine and relays
// deltas over a buffered channel, ending with a single Done chunk.
func (o *OpenAILLM) GenerateStream(ctx context.Context, prompt string) (<-chan StreamChunk, error) {
	req := o.request(prompt)
	req.Stream = true
	stream, err := o.Client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", ErrCompletionFailed, err)
	}

	ch := make(chan StreamChunk, streamBuffer)
	go func() {
		defer close(ch)
		defer stream.Close()
		var sb strings.Builder
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				ch <- StreamChunk{Done: true, FullText: sb.String()}
				return
			}
			if err != nil {
				ch <- StreamChunk{Done: true, FullText: sb.String(), Err: fmt.Errorf("%w: openai: %v", ErrCompletionFailed, err)}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			if delta := resp.Choices[0].Delta.Content; delta != "" {
				sb.WriteString(delta)
				ch <- StreamChunk{Delta: delta}
			}
		}
	}()
	return ch, nil
}

var _ Model = (*OpenAILLM)(nil)
