package memory

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a required record is absent and auto-creation
// does not apply (e.g. consolidating a memory that was never initialized).
var ErrNotFound = errors.New("memory: record not found")

// Store is the keyed-document surface the agent roles depend on. Appends
// prepend in memory and persist the whole entry sequence under the same key;
// there is no transaction across concurrent writers, so the last write wins.
type Store interface {
	// Student looks up an enrollment profile; ErrNotFound when absent.
	Student(ctx context.Context, id string) (*StudentProfile, error)

	// ShortTerm looks up an existing record; ErrNotFound when absent.
	ShortTerm(ctx context.Context, subjectID, topicID string) (*ShortTermRecord, error)
	// EnsureShortTerm creates an empty record on first use and re-reads it, so
	// the caller always observes the persisted state.
	EnsureShortTerm(ctx context.Context, subjectID, topicID string) (*ShortTermRecord, error)
	// AppendInteraction prepends the entry to the record and replaces the
	// persisted sequence.
	AppendInteraction(ctx context.Context, rec *ShortTermRecord, entry Interaction) error

	LongTerm(ctx context.Context, subjectID, topicID string) (*LongTermRecord, error)
	EnsureLongTerm(ctx context.Context, subjectID, topicID string) (*LongTermRecord, error)
	// PrependSummary prepends a consolidated summary and replaces the
	// persisted sequence.
	PrependSummary(ctx context.Context, rec *LongTermRecord, summary Summary) error
}

// Collection names used by the document-store implementations.
const (
	CollectionStudents    = "students"
	CollectionShortTerm   = "short_term_memories"
	CollectionLongTerm    = "long_term_memories"
	CollectionContentBots = "content_agents"
)
