package retrieval

import (
	"context"

	fastembed "github.com/anush008/fastembed-go"
)

// QueryEmbedder turns a query string into a vector for similarity search.
type QueryEmbedder interface {
	Embed(ctx context.Context, query string) ([]float32, error)
}

// FastEmbedder runs a local ONNX embedding model (bge-small-en-v1.5), so the
// pgvector backend needs no remote embedding service.
type FastEmbedder struct {
	model *fastembed.FlagEmbedding
}

func NewFastEmbedder() (*FastEmbedder, error) {
	model, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model: fastembed.BGESmallENV15,
	})
	if err != nil {
		return nil, err
	}
	return &FastEmbedder{model: model}, nil
}

func (e *FastEmbedder) Embed(_ context.Context, query string) ([]float32, error) {
	return e.model.QueryEmbed(query)
}

func (e *FastEmbedder) Close() error {
	if e.model != nil {
		e.model.Destroy()
	}
	return nil
}
