package agents

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Boost-Education-Inc/agents-package/src/models"
	"github.com/Boost-Education-Inc/agents-package/src/sink"
)

// EndOfStream is the reserved marker delivered to a sink after the last
// fragment of a streamed turn. Exactly one is sent per stream, always last,
// and it is never part of the accumulated text.
const EndOfStream = "[¬TUTOR_END¬]"

// ErrStreamFailed marks a stream that terminated because the underlying
// completion call failed. The terminator is still delivered first, so
// consumers reading the sink can always stop on it.
var ErrStreamFailed = errors.New("agents: stream failed")

// Streamer is the incremental-generation surface the relay consumes.
type Streamer interface {
	GenerateStream(ctx context.Context, prompt string) (<-chan models.StreamChunk, error)
}

type relayState int

const (
	relayIdle relayState = iota
	relayStreaming
	relayDone
)

// StreamRelay drives one streamed completion: every fragment is delivered to
// the sink and accumulated, then the terminator is sent. A relay is single
// use; construct a new one per call.
type StreamRelay struct {
	model  Streamer
	out    sink.Sink
	logger *log.Logger
	state  relayState
}

func NewStreamRelay(model Streamer, out sink.Sink, logger *log.Logger) *StreamRelay {
	if out == nil {
		out = sink.NewLogSink(logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &StreamRelay{model: model, out: out, logger: logger}
}

// Run streams the completion for prompt and returns the accumulated text.
// When the sink becomes unavailable the producer context is cancelled and the
// channel drained so the background task is released.
func (r *StreamRelay) Run(ctx context.Context, prompt string) (string, error) {
	if r.state != relayIdle {
		return "", errors.New("agents: stream relay already used")
	}
	r.state = relayStreaming

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := r.model.GenerateStream(streamCtx, prompt)
	if err != nil {
		r.state = relayDone
		return "", err
	}

	var (
		acc       strings.Builder
		sinkErr   error
		streamErr error
	)
	for chunk := range ch {
		if chunk.Err != nil {
			streamErr = chunk.Err
			r.logger.Printf("stream relay: completion error: %v", chunk.Err)
			break
		}
		if chunk.Delta == "" {
			continue
		}
		if sinkErr == nil {
			if err := r.out.Send(ctx, chunk.Delta); err != nil {
				sinkErr = err
				r.logger.Printf("stream relay: sink unavailable, cancelling stream: %v", err)
				cancel()
			}
		}
		if chunk.Delta != EndOfStream {
			acc.WriteString(chunk.Delta)
		}
	}
	for range ch {
		// Drain so the producer goroutine always exits.
	}

	// The terminator goes out even after a failure; best effort once the sink
	// itself is gone.
	if err := r.out.Send(ctx, EndOfStream); err != nil && sinkErr == nil {
		sinkErr = err
	}

	r.state = relayDone
	text := acc.String()
	if streamErr != nil {
		return text, fmt.Errorf("%w: %v", ErrStreamFailed, streamErr)
	}
	if sinkErr != nil {
		return text, fmt.Errorf("agents: deliver stream to sink: %w", sinkErr)
	}
	return text, nil
}
