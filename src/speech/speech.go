package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// Synthesizer turns text into raw audio bytes using a named voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, voice, text string) ([]byte, error)
}

// PollySynthesizer produces mp3 audio through Amazon Polly.
type PollySynthesizer struct {
	client *polly.Client
}

func NewPollySynthesizer(cfg aws.Config) *PollySynthesizer {
	return &PollySynthesizer{client: polly.NewFromConfig(cfg)}
}

func (p *PollySynthesizer) Synthesize(ctx context.Context, voice, text string) ([]byte, error) {
	out, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		OutputFormat: types.OutputFormatMp3,
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voice),
	})
	if err != nil {
		return nil, fmt.Errorf("speech: synthesize: %w", err)
	}
	defer out.AudioStream.Close()
	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("speech: read audio stream: %w", err)
	}
	return audio, nil
}

var _ Synthesizer = (*PollySynthesizer)(nil)
