package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

type OllamaConfig struct {
	Host  string // defaults to http://localhost:11434
	Model string
}

type OllamaLLM struct {
	Client *ollama.Client
	Model  string
}

func NewOllamaLLM(cfg OllamaConfig) (*OllamaLLM, error) {
	host := cfg.Host
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	httpClient := &http.Client{Timeout: 60 * time.Second}
	return &OllamaLLM{Client: ollama.NewClient(u, httpClient), Model: cfg.Model}, nil
}

func (o *OllamaLLM) Generate(ctx context.Context, prompt string) (string, error) {
	var text strings.Builder
	req := &ollama.GenerateRequest{Model: o.Model, Prompt: prompt}
	if err := o.Client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		if gr.Response != "" {
			text.WriteString(gr.Response)
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("%w: ollama: %v", ErrCompletionFailed, err)
	}
	return text.String(), nil
}

// GenerateStream leverages Ollama's native callback-based streaming.
func (o *OllamaLLM) GenerateStream(ctx context.Context, prompt string) (<-chan StreamChunk, error) {
	req := &ollama.GenerateRequest{Model: o.Model, Prompt: prompt}

	ch := make(chan StreamChunk, streamBuffer)
	go func() {
		defer close(ch)
		var sb strings.Builder
		err := o.Client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
			if gr.Response != "" {
				sb.WriteString(gr.Response)
				ch <- StreamChunk{Delta: gr.Response}
			}
			return nil
		})
		if err != nil {
			ch <- StreamChunk{Done: true, FullText: sb.String(), Err: fmt.Errorf("%w: ollama: %v", ErrCompletionFailed, err)}
			return
		}
		ch <- StreamChunk{Done: true, FullText: sb.String()}
	}()
	return ch, nil
}

var _ Model = (*OllamaLLM)(nil)
