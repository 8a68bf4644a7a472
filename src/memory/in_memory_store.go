package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Boost-Education-Inc/agents-package/src/retrieval"
)

// InMemoryStore mirrors the document-store contract without a database.
// Useful for tests and local runs.
type InMemoryStore struct {
	mu        sync.Mutex
	students  map[string]StudentProfile
	shortTerm map[pairKey]ShortTermRecord
	longTerm  map[pairKey]LongTermRecord
	bindings  map[string]retrieval.Binding
}

type pairKey struct {
	subjectID string
	topicID   string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		students:  make(map[string]StudentProfile),
		shortTerm: make(map[pairKey]ShortTermRecord),
		longTerm:  make(map[pairKey]LongTermRecord),
		bindings:  make(map[string]retrieval.Binding),
	}
}

// SeedStudent registers an enrollment profile, standing in for the external
// enrollment flow.
func (s *InMemoryStore) SeedStudent(profile StudentProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[profile.ID] = profile
}

func (s *InMemoryStore) Student(_ context.Context, id string) (*StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.students[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

func (s *InMemoryStore) ShortTerm(_ context.Context, subjectID, topicID string) (*ShortTermRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.shortTerm[pairKey{subjectID, topicID}]
	if !ok {
		return nil, ErrNotFound
	}
	copied := rec
	copied.Interactions = append([]Interaction(nil), rec.Interactions...)
	return &copied, nil
}

func (s *InMemoryStore) EnsureShortTerm(ctx context.Context, subjectID, topicID string) (*ShortTermRecord, error) {
	s.mu.Lock()
	key := pairKey{subjectID, topicID}
	if _, ok := s.shortTerm[key]; !ok {
		s.shortTerm[key] = ShortTermRecord{
			ID:           uuid.NewString(),
			SubjectID:    subjectID,
			TopicID:      topicID,
			Interactions: []Interaction{},
		}
	}
	s.mu.Unlock()
	return s.ShortTerm(ctx, subjectID, topicID)
}

func (s *InMemoryStore) AppendInteraction(_ context.Context, rec *ShortTermRecord, entry Interaction) error {
	rec.Interactions = append([]Interaction{entry}, rec.Interactions...)
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{rec.SubjectID, rec.TopicID}
	stored := s.shortTerm[key]
	stored.Interactions = append([]Interaction(nil), rec.Interactions...)
	if stored.ID == "" {
		stored = *rec
	}
	s.shortTerm[key] = stored
	return nil
}

func (s *InMemoryStore) LongTerm(_ context.Context, subjectID, topicID string) (*LongTermRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.longTerm[pairKey{subjectID, topicID}]
	if !ok {
		return nil, ErrNotFound
	}
	copied := rec
	copied.Summaries = append([]Summary(nil), rec.Summaries...)
	return &copied, nil
}

func (s *InMemoryStore) EnsureLongTerm(ctx context.Context, subjectID, topicID string) (*LongTermRecord, error) {
	s.mu.Lock()
	key := pairKey{subjectID, topicID}
	if _, ok := s.longTerm[key]; !ok {
		s.longTerm[key] = LongTermRecord{
			ID:        uuid.NewString(),
			SubjectID: subjectID,
			TopicID:   topicID,
			Summaries: []Summary{},
		}
	}
	s.mu.Unlock()
	return s.LongTerm(ctx, subjectID, topicID)
}

func (s *InMemoryStore) PrependSummary(_ context.Context, rec *LongTermRecord, summary Summary) error {
	rec.Summaries = append([]Summary{summary}, rec.Summaries...)
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{rec.SubjectID, rec.TopicID}
	stored := s.longTerm[key]
	stored.Summaries = append([]Summary(nil), rec.Summaries...)
	if stored.ID == "" {
		stored = *rec
	}
	s.longTerm[key] = stored
	return nil
}

func (s *InMemoryStore) Binding(_ context.Context, id string) (*retrieval.Binding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	binding, ok := s.bindings[id]
	if !ok {
		return nil, retrieval.ErrBindingNotFound
	}
	return &binding, nil
}

func (s *InMemoryStore) PutBinding(_ context.Context, binding *retrieval.Binding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[binding.ID] = *binding
	return nil
}

var (
	_ Store                  = (*InMemoryStore)(nil)
	_ retrieval.BindingStore = (*InMemoryStore)(nil)
)
