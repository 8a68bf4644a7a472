package memory

import (
	"fmt"
	"strings"
	"time"
)

// InteractionRole tags who produced an interaction entry.
type InteractionRole string

const (
	RoleSubject InteractionRole = "subject"
	RoleAgent   InteractionRole = "agent"
)

// Interaction is one entry of the short-term (per-session) log. Immutable once
// created.
type Interaction struct {
	Role      InteractionRole `bson:"role"`
	Content   string          `bson:"content"`
	Timestamp time.Time       `bson:"timestamp"`
}

func (i Interaction) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Timestamp.UTC().Format(time.RFC3339), i.Role, i.Content)
}

// ShortTermRecord is the raw interaction log for one (subject, topic) pair,
// newest entry first. It grows without bound; trimming is out of scope.
type ShortTermRecord struct {
	ID           string        `bson:"_id"`
	SubjectID    string        `bson:"subject_id"`
	TopicID      string        `bson:"topic_id"`
	Interactions []Interaction `bson:"interactions"`
}

// FormatInteractions renders the log oldest-line-last, the way the prompt
// templates expect chat history.
func (r *ShortTermRecord) FormatInteractions() string {
	lines := make([]string, 0, len(r.Interactions))
	for _, it := range r.Interactions {
		lines = append(lines, it.String())
	}
	return strings.Join(lines, "\n")
}

// Summary is one consolidated knowledge entry of a long-term record.
type Summary struct {
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

// LongTermRecord holds consolidated knowledge summaries for one
// (subject, topic) pair, newest first. Only the learn operation writes it.
type LongTermRecord struct {
	ID        string    `bson:"_id"`
	SubjectID string    `bson:"subject_id"`
	TopicID   string    `bson:"topic_id"`
	Summaries []Summary `bson:"summaries"`
}

// FormatSummaries joins the consolidated entries newest-first for prompt use.
func (r *LongTermRecord) FormatSummaries() string {
	lines := make([]string, 0, len(r.Summaries))
	for _, s := range r.Summaries {
		lines = append(lines, s.Content)
	}
	return strings.Join(lines, "\n")
}

// StudentProfile is created by external enrollment and read-only here.
type StudentProfile struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Age         int    `bson:"age"`
	Gender      string `bson:"gender"`
	Description string `bson:"description"`
}

func (p *StudentProfile) String() string {
	return fmt.Sprintf("name: %s, age: %d, gender: %s, description: %s",
		p.Name, p.Age, p.Gender, p.Description)
}
