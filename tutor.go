package agents

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Boost-Education-Inc/agents-package/src/blob"
	"github.com/Boost-Education-Inc/agents-package/src/memory"
	"github.com/Boost-Education-Inc/agents-package/src/models"
	"github.com/Boost-Education-Inc/agents-package/src/prompts"
	"github.com/Boost-Education-Inc/agents-package/src/retrieval"
	"github.com/Boost-Education-Inc/agents-package/src/sink"
	"github.com/Boost-Education-Inc/agents-package/src/speech"
)

// Content queries used when an operation surveys the bound content instead of
// answering a specific question.
const (
	presentationQuery  = "What is the main idea"
	contentSurveyQuery = "Key aspects of each part/charper/section"
)

const defaultVoice = "Joey"

// Response is the outcome of one tutor turn. AudioURL is set only by the
// presentation-to-speech operation.
type Response struct {
	Text     string
	AudioURL string
}

type speechPayload struct {
	AudioURL           string `json:"audio_url"`
	PresentationScript string `json:"presentation_script"`
}

// TutorOptions configure a tutor bound to one student and one content.
type TutorOptions struct {
	StudentID string
	ContentID string
	// Streaming, fixed at construction, routes chat answers through a stream
	// relay instead of a blocking call.
	Streaming bool

	Store     memory.Store
	Model     models.Model
	Retriever *retrieval.Client
	// ContentBinding registers index parameters for ContentID on first use;
	// leave nil when the binding already exists.
	ContentBinding *retrieval.Binding

	// Out receives streamed tokens and generated payloads; when nil, a log
	// sink stands in for streaming and payloads are only returned.
	Out    sink.Sink
	Speech speech.Synthesizer
	Audio  blob.Store
	Voice  string
	// AudioFolder prefixes generated audio object keys, e.g. "temp".
	AudioFolder string

	Logger *log.Logger
}

// Tutor answers questions and generates presentation material for one
// (student, content) pair, recording each chat exchange in short-term memory.
type Tutor struct {
	studentID string
	contentID string
	bindingID string
	streaming bool

	store       memory.Store
	model       models.Model
	retriever   *retrieval.Client
	out         sink.Sink
	speech      speech.Synthesizer
	audio       blob.Store
	voice       string
	audioFolder string
	logger      *log.Logger

	// Working copies loaded at construction. Another writer may interleave;
	// the last write wins.
	shortTerm *memory.ShortTermRecord
	longTerm  *memory.LongTermRecord
}

func NewTutor(ctx context.Context, opts TutorOptions) (*Tutor, error) {
	if opts.StudentID == "" {
		return nil, errors.New("agents: tutor requires a student id")
	}
	if opts.ContentID == "" {
		return nil, errors.New("agents: tutor requires a content id")
	}
	if opts.Store == nil {
		return nil, errors.New("agents: tutor requires a memory store")
	}
	if opts.Model == nil {
		return nil, errors.New("agents: tutor requires a completion model")
	}
	if opts.Retriever == nil {
		return nil, errors.New("agents: tutor requires a retrieval client")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	voice := opts.Voice
	if voice == "" {
		voice = defaultVoice
	}
	audioFolder := opts.AudioFolder
	if audioFolder == "" {
		audioFolder = "temp"
	}

	bindingID, err := opts.Retriever.Resolve(ctx, opts.ContentID, opts.ContentBinding)
	if err != nil {
		return nil, err
	}

	shortTerm, err := opts.Store.EnsureShortTerm(ctx, opts.StudentID, opts.ContentID)
	if err != nil {
		return nil, err
	}
	longTerm, err := opts.Store.EnsureLongTerm(ctx, opts.StudentID, opts.ContentID)
	if err != nil {
		return nil, err
	}

	return &Tutor{
		studentID:   opts.StudentID,
		contentID:   opts.ContentID,
		bindingID:   bindingID,
		streaming:   opts.Streaming,
		store:       opts.Store,
		model:       opts.Model,
		retriever:   opts.Retriever,
		out:         opts.Out,
		speech:      opts.Speech,
		audio:       opts.Audio,
		voice:       voice,
		audioFolder: audioFolder,
		logger:      logger,
		shortTerm:   shortTerm,
		longTerm:    longTerm,
	}, nil
}

// Respond performs the operation the perception describes.
func (t *Tutor) Respond(ctx context.Context, p Perception) (*Response, error) {
	switch p := p.(type) {
	case ChatPerception:
		return t.chat(ctx, p.Question)
	case PresentationPerception:
		return t.presentation(ctx)
	case LearningPlanPerception:
		return t.learningPlan(ctx)
	case PresentationToSpeechPerception:
		return t.presentationToSpeech(ctx, p.PresentationHTML)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPerception, p)
	}
}

func (t *Tutor) chat(ctx context.Context, question string) (*Response, error) {
	prompt, err := t.renderWithContent(ctx, prompts.TutorContext, question, map[string]string{
		"question": question,
	})
	if err != nil {
		return nil, err
	}

	var answer string
	if t.streaming {
		relay := NewStreamRelay(t.model, t.out, t.logger)
		answer, err = relay.Run(ctx, prompt)
	} else {
		answer, err = t.model.Generate(ctx, prompt)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := t.store.AppendInteraction(ctx, t.shortTerm, memory.Interaction{
		Role: memory.RoleSubject, Content: question, Timestamp: now,
	}); err != nil {
		return nil, err
	}
	if err := t.store.AppendInteraction(ctx, t.shortTerm, memory.Interaction{
		Role: memory.RoleAgent, Content: answer, Timestamp: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return &Response{Text: answer}, nil
}

func (t *Tutor) presentation(ctx context.Context) (*Response, error) {
	prompt, err := t.renderWithContent(ctx, prompts.TutorPresentation, presentationQuery, nil)
	if err != nil {
		return nil, err
	}
	markup, err := t.model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	// Single-line markup payload: the client injects it straight into the DOM.
	markup = strings.ReplaceAll(stripFenceLabel(markup), "\n", "")
	t.forward(ctx, markup)
	return &Response{Text: markup}, nil
}

func (t *Tutor) learningPlan(ctx context.Context) (*Response, error) {
	prompt, err := t.renderWithContent(ctx, prompts.TutorPlan, contentSurveyQuery, nil)
	if err != nil {
		return nil, err
	}
	plan, err := t.model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	plan = stripFenceLabel(plan)
	t.forward(ctx, plan)
	return &Response{Text: plan}, nil
}

func (t *Tutor) presentationToSpeech(ctx context.Context, presentationHTML string) (*Response, error) {
	if t.speech == nil || t.audio == nil {
		return nil, errors.New("agents: speech synthesis is not configured")
	}
	prompt, err := prompts.TutorPresentationScript.Render(map[string]string{
		"presentation_html": presentationHTML,
	})
	if err != nil {
		return nil, err
	}
	script, err := t.model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	audio, err := t.speech.Synthesize(ctx, t.voice, script)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s.mp3", t.audioFolder, uuid.NewString())
	audioURL, err := t.audio.Put(ctx, key, audio, "audio/mpeg")
	if err != nil {
		return nil, err
	}
	t.forward(ctx, speechPayload{AudioURL: audioURL, PresentationScript: script})
	return &Response{Text: script, AudioURL: audioURL}, nil
}

// renderWithContent gathers the student profile, long-term memory, and
// retrieved content, then renders the template with those plus extra vars.
func (t *Tutor) renderWithContent(ctx context.Context, template prompts.Template, contentQuery string, extra map[string]string) (string, error) {
	profile, err := t.store.Student(ctx, t.studentID)
	if err != nil {
		return "", err
	}
	content, err := t.retriever.Retrieve(ctx, t.bindingID, contentQuery)
	if err != nil {
		return "", err
	}
	vars := map[string]string{
		"student_data": profile.String(),
		"long_memory":  t.longTerm.FormatSummaries(),
		"context":      content,
	}
	for k, v := range extra {
		vars[k] = v
	}
	return template.Render(vars)
}

// forward pushes a payload when a client sink is attached. Delivery failures
// are logged, not propagated; the payload is still returned to the caller.
func (t *Tutor) forward(ctx context.Context, payload any) {
	if t.out == nil {
		return
	}
	if err := t.out.Send(ctx, payload); err != nil {
		t.logger.Printf("tutor: forward payload: %v", err)
	}
}

// stripFenceLabel removes a leading markdown fence label (``` and/or "html")
// left by the model in front of markup output.
func stripFenceLabel(s string) string {
	out := strings.TrimLeft(s, " \t\r\n")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimPrefix(out, "html")
	return strings.TrimLeft(out, "\r\n")
}
