package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Boost-Education-Inc/agents-package/src/retrieval"
)

func TestInMemoryStoreShortTermMissing(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.ShortTerm(context.Background(), "s1", "t1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStoreEnsureShortTermCreatesEmptyRecord(t *testing.T) {
	store := NewInMemoryStore()
	rec, err := store.EnsureShortTerm(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("EnsureShortTerm returned error: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("record has no id")
	}
	if rec.SubjectID != "s1" || rec.TopicID != "t1" {
		t.Fatalf("record keyed wrong: %+v", rec)
	}
	if len(rec.Interactions) != 0 {
		t.Fatalf("new record has interactions: %+v", rec.Interactions)
	}

	// A second ensure returns the same record, not a fresh one.
	again, err := store.EnsureShortTerm(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("EnsureShortTerm returned error: %v", err)
	}
	if again.ID != rec.ID {
		t.Fatalf("ensure created a second record: %q vs %q", again.ID, rec.ID)
	}
}

func TestInMemoryStoreAppendInteractionPrepends(t *testing.T) {
	store := NewInMemoryStore()
	rec, err := store.EnsureShortTerm(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("EnsureShortTerm returned error: %v", err)
	}
	first := Interaction{Role: RoleSubject, Content: "q1", Timestamp: time.Now().UTC()}
	second := Interaction{Role: RoleAgent, Content: "a1", Timestamp: time.Now().UTC()}
	if err := store.AppendInteraction(context.Background(), rec, first); err != nil {
		t.Fatalf("AppendInteraction returned error: %v", err)
	}
	if err := store.AppendInteraction(context.Background(), rec, second); err != nil {
		t.Fatalf("AppendInteraction returned error: %v", err)
	}

	stored, err := store.ShortTerm(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("ShortTerm returned error: %v", err)
	}
	if len(stored.Interactions) != 2 {
		t.Fatalf("expected 2 interactions, got %d", len(stored.Interactions))
	}
	if stored.Interactions[0].Content != "a1" || stored.Interactions[1].Content != "q1" {
		t.Fatalf("interactions out of order: %+v", stored.Interactions)
	}
}

func TestInMemoryStorePrependSummaryNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	rec, err := store.EnsureLongTerm(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("EnsureLongTerm returned error: %v", err)
	}
	older := Summary{Content: "older", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := Summary{Content: "newer", CreatedAt: time.Now().UTC()}
	if err := store.PrependSummary(context.Background(), rec, older); err != nil {
		t.Fatalf("PrependSummary returned error: %v", err)
	}
	if err := store.PrependSummary(context.Background(), rec, newer); err != nil {
		t.Fatalf("PrependSummary returned error: %v", err)
	}

	stored, err := store.LongTerm(context.Background(), "s1", "t1")
	if err != nil {
		t.Fatalf("LongTerm returned error: %v", err)
	}
	if stored.Summaries[0].Content != "newer" || stored.Summaries[1].Content != "older" {
		t.Fatalf("summaries out of order: %+v", stored.Summaries)
	}
}

func TestInMemoryStoreStudentLookup(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Student(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	store.SeedStudent(StudentProfile{ID: "s1", Name: "Ada", Age: 12, Gender: "female", Description: "curious"})
	profile, err := store.Student(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Student returned error: %v", err)
	}
	if !strings.Contains(profile.String(), "name: Ada") {
		t.Fatalf("profile string = %q", profile.String())
	}
}

func TestInMemoryStoreBindingRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Binding(context.Background(), "b1"); !errors.Is(err, retrieval.ErrBindingNotFound) {
		t.Fatalf("error = %v, want ErrBindingNotFound", err)
	}
	binding := &retrieval.Binding{
		ID:      "b1",
		Backend: retrieval.BackendVectara,
		Vectara: &retrieval.VectaraParams{CustomerID: 1, CorpusID: 2, APIKey: "k"},
	}
	if err := store.PutBinding(context.Background(), binding); err != nil {
		t.Fatalf("PutBinding returned error: %v", err)
	}
	stored, err := store.Binding(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Binding returned error: %v", err)
	}
	if stored.Backend != retrieval.BackendVectara || stored.Vectara.CorpusID != 2 {
		t.Fatalf("stored binding = %+v", stored)
	}
}

func TestFormatInteractions(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := &ShortTermRecord{Interactions: []Interaction{
		{Role: RoleAgent, Content: "a1", Timestamp: ts},
		{Role: RoleSubject, Content: "q1", Timestamp: ts},
	}}
	got := rec.FormatInteractions()
	want := "[2024-03-01T10:00:00Z] agent: a1\n[2024-03-01T10:00:00Z] subject: q1"
	if got != want {
		t.Fatalf("FormatInteractions = %q, want %q", got, want)
	}
	empty := &ShortTermRecord{}
	if empty.FormatInteractions() != "" {
		t.Fatalf("empty log formats to %q", empty.FormatInteractions())
	}
}
