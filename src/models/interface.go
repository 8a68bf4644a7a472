package models

import (
	"context"
	"errors"
)

// ErrCompletionFailed wraps every failure surfaced by a completion backend so
// callers can branch on the condition without knowing which provider is wired.
var ErrCompletionFailed = errors.New("completion failed")

// StreamChunk is one unit of an incremental generation. Delta carries a text
// fragment; the final chunk has Done set, the accumulated FullText, and Err
// when the underlying call failed mid-stream.
type StreamChunk struct {
	Delta    string
	FullText string
	Done     bool
	Err      error
}

// Model is the completion surface the agent roles depend on. GenerateStream
// runs generation as a background task; the returned channel is closed after
// the final Done chunk, and consumers must drain it to release the task.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string) (<-chan StreamChunk, error)
}

const streamBuffer = 16
