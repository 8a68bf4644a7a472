package sink

import (
	"context"
	"log"
)

// Sink receives JSON-serializable payloads pushed by an agent turn. Delivery
// is fire-and-forget from the caller's perspective; no acknowledgement is
// consumed.
type Sink interface {
	Send(ctx context.Context, payload any) error
}

// LogSink writes payloads to a logger. It stands in when no client connection
// is attached, mirroring how streamed tokens are logged server-side.
type LogSink struct {
	Logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{Logger: logger}
}

func (s *LogSink) Send(_ context.Context, payload any) error {
	s.Logger.Printf("sink: %v", payload)
	return nil
}

var _ Sink = (*LogSink)(nil)
