package agents

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Boost-Education-Inc/agents-package/src/memory"
	"github.com/Boost-Education-Inc/agents-package/src/models"
	"github.com/Boost-Education-Inc/agents-package/src/prompts"
)

// StudentOptions configure a learner role bound to one student and topic.
type StudentOptions struct {
	StudentID string
	TopicID   string
	Store     memory.Store
	Model     models.Model
	Logger    *log.Logger
}

// Student plays back what a learner knows (Recall) and consolidates raw
// interaction logs into long-term knowledge (Learn).
type Student struct {
	studentID string
	topicID   string
	store     memory.Store
	model     models.Model
	logger    *log.Logger

	longTerm *memory.LongTermRecord
}

func NewStudent(ctx context.Context, opts StudentOptions) (*Student, error) {
	if opts.StudentID == "" {
		return nil, errors.New("agents: student requires a student id")
	}
	if opts.TopicID == "" {
		return nil, errors.New("agents: student requires a topic id")
	}
	if opts.Store == nil {
		return nil, errors.New("agents: student requires a memory store")
	}
	if opts.Model == nil {
		return nil, errors.New("agents: student requires a completion model")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	longTerm, err := opts.Store.EnsureLongTerm(ctx, opts.StudentID, opts.TopicID)
	if err != nil {
		return nil, err
	}
	return &Student{
		studentID: opts.StudentID,
		topicID:   opts.TopicID,
		store:     opts.Store,
		model:     opts.Model,
		logger:    logger,
		longTerm:  longTerm,
	}, nil
}

// Recall answers a question from the student's point of view, using the
// profile and consolidated long-term memory only.
func (s *Student) Recall(ctx context.Context, question string) (string, error) {
	profile, err := s.store.Student(ctx, s.studentID)
	if err != nil {
		return "", err
	}
	prompt, err := prompts.StudentRecall.Render(map[string]string{
		"student_data": profile.String(),
		"long_memory":  s.longTerm.FormatSummaries(),
		"question":     question,
	})
	if err != nil {
		return "", err
	}
	return s.model.Generate(ctx, prompt)
}

// Learn consolidates the full short-term log for (student, topic) into a
// timestamped long-term summary. It requires an initialized short-term record
// and fails with memory.ErrNotFound otherwise; an empty record still
// consolidates (to "no interactions").
func (s *Student) Learn(ctx context.Context, topicID string) (string, error) {
	shortTerm, err := s.store.ShortTerm(ctx, s.studentID, topicID)
	if err != nil {
		return "", err
	}
	prompt, err := prompts.MemoryConsolidation.Render(map[string]string{
		"interactions": shortTerm.FormatInteractions(),
	})
	if err != nil {
		return "", err
	}
	summary, err := s.model.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	longTerm, err := s.store.EnsureLongTerm(ctx, s.studentID, topicID)
	if err != nil {
		return "", err
	}
	if err := s.store.PrependSummary(ctx, longTerm, memory.Summary{
		Content:   summary,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return "", err
	}
	if topicID == s.topicID {
		s.longTerm = longTerm
	}
	return summary, nil
}
