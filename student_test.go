package agents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Boost-Education-Inc/agents-package/src/memory"
)

const testTopicID = "calc-101"

func newTestStudent(t *testing.T, store *memory.InMemoryStore, model *fakeModel) *Student {
	t.Helper()
	store.SeedStudent(memory.StudentProfile{
		ID: testStudentID, Name: "Ada", Age: 12, Gender: "female", Description: "curious",
	})
	student, err := NewStudent(context.Background(), StudentOptions{
		StudentID: testStudentID,
		TopicID:   testTopicID,
		Store:     store,
		Model:     model,
	})
	if err != nil {
		t.Fatalf("NewStudent returned error: %v", err)
	}
	return student
}

func TestStudentLearnRequiresShortTermRecord(t *testing.T) {
	store := memory.NewInMemoryStore()
	student := newTestStudent(t, store, &fakeModel{reply: "summary"})

	_, err := student.Learn(context.Background(), testTopicID)
	if !errors.Is(err, memory.ErrNotFound) {
		t.Fatalf("error = %v, want memory.ErrNotFound", err)
	}
}

func TestStudentLearnConsolidatesEmptyRecord(t *testing.T) {
	store := memory.NewInMemoryStore()
	model := &fakeModel{reply: "There were no interactions."}
	student := newTestStudent(t, store, model)
	if _, err := store.EnsureShortTerm(context.Background(), testStudentID, testTopicID); err != nil {
		t.Fatalf("EnsureShortTerm returned error: %v", err)
	}

	summary, err := student.Learn(context.Background(), testTopicID)
	if err != nil {
		t.Fatalf("Learn returned error: %v", err)
	}
	if summary != model.reply {
		t.Fatalf("summary = %q", summary)
	}
	rec, err := store.LongTerm(context.Background(), testStudentID, testTopicID)
	if err != nil {
		t.Fatalf("LongTerm returned error: %v", err)
	}
	if len(rec.Summaries) != 1 || rec.Summaries[0].Content != model.reply {
		t.Fatalf("long-term summaries = %+v", rec.Summaries)
	}
	if rec.Summaries[0].CreatedAt.IsZero() {
		t.Fatalf("summary missing timestamp")
	}
}

func TestStudentLearnPrependsNewestSummary(t *testing.T) {
	store := memory.NewInMemoryStore()
	model := &fakeModel{reply: "second summary"}
	student := newTestStudent(t, store, model)

	shortTerm, err := store.EnsureShortTerm(context.Background(), testStudentID, testTopicID)
	if err != nil {
		t.Fatalf("EnsureShortTerm returned error: %v", err)
	}
	longTerm, err := store.EnsureLongTerm(context.Background(), testStudentID, testTopicID)
	if err != nil {
		t.Fatalf("EnsureLongTerm returned error: %v", err)
	}
	if err := store.PrependSummary(context.Background(), longTerm, memory.Summary{
		Content: "first summary", CreatedAt: time.Now().UTC().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("PrependSummary returned error: %v", err)
	}
	if err := store.AppendInteraction(context.Background(), shortTerm, memory.Interaction{
		Role: memory.RoleSubject, Content: "what changed?", Timestamp: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("AppendInteraction returned error: %v", err)
	}

	if _, err := student.Learn(context.Background(), testTopicID); err != nil {
		t.Fatalf("Learn returned error: %v", err)
	}
	rec, err := store.LongTerm(context.Background(), testStudentID, testTopicID)
	if err != nil {
		t.Fatalf("LongTerm returned error: %v", err)
	}
	if len(rec.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(rec.Summaries))
	}
	if rec.Summaries[0].Content != "second summary" || rec.Summaries[1].Content != "first summary" {
		t.Fatalf("summaries out of order: %+v", rec.Summaries)
	}
	// The consolidation prompt carried the interaction log.
	if !strings.Contains(model.prompts[0], "what changed?") {
		t.Fatalf("consolidation prompt missing interactions:\n%s", model.prompts[0])
	}
}

func TestStudentRecallUsesProfileAndLongTermMemory(t *testing.T) {
	store := memory.NewInMemoryStore()
	model := &fakeModel{reply: "I remember derivatives."}

	longTerm, err := store.EnsureLongTerm(context.Background(), testStudentID, testTopicID)
	if err != nil {
		t.Fatalf("EnsureLongTerm returned error: %v", err)
	}
	if err := store.PrependSummary(context.Background(), longTerm, memory.Summary{
		Content: "Learned the chain rule.", CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("PrependSummary returned error: %v", err)
	}
	student := newTestStudent(t, store, model)

	answer, err := student.Recall(context.Background(), "What do you know?")
	if err != nil {
		t.Fatalf("Recall returned error: %v", err)
	}
	if answer != model.reply {
		t.Fatalf("answer = %q", answer)
	}
	if !strings.Contains(model.prompts[0], "Ada") {
		t.Fatalf("recall prompt missing profile:\n%s", model.prompts[0])
	}
	if !strings.Contains(model.prompts[0], "Learned the chain rule.") {
		t.Fatalf("recall prompt missing long-term memory:\n%s", model.prompts[0])
	}
}
