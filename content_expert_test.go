package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/Boost-Education-Inc/agents-package/src/retrieval"
)

func TestNewContentExpertRequiresBindingOrParams(t *testing.T) {
	_, client := newTestFixture(t, &fakeIndex{})

	_, err := NewContentExpert(context.Background(), ContentExpertOptions{
		Retriever: client,
		Model:     &fakeModel{reply: "x"},
	})
	if err == nil {
		t.Fatalf("expected error when neither binding id nor parameters are given")
	}
}

func TestContentExpertAnswersFromRetrievedChunks(t *testing.T) {
	index := &fakeIndex{passages: []retrieval.Passage{
		{Text: "Chapter one covers limits."},
		{Text: "Chapter two covers derivatives."},
	}}
	_, client := newTestFixture(t, index)
	model := &fakeModel{reply: "Two chapters: limits, then derivatives."}

	expert, err := NewContentExpert(context.Background(), ContentExpertOptions{
		BindingID: testContentID,
		Binding:   testBinding(),
		Retriever: client,
		Model:     model,
	})
	if err != nil {
		t.Fatalf("NewContentExpert returned error: %v", err)
	}

	answer, err := expert.Answer(context.Background(), "What does the course cover?")
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if answer != model.reply {
		t.Fatalf("answer = %q", answer)
	}
	if index.queries[0] != contentSurveyQuery {
		t.Fatalf("content query = %q", index.queries[0])
	}
	if !strings.Contains(model.prompts[0], "Chapter one covers limits.Chapter two covers derivatives.") {
		t.Fatalf("prompt missing concatenated chunks:\n%s", model.prompts[0])
	}
	if !strings.Contains(model.prompts[0], "What does the course cover?") {
		t.Fatalf("prompt missing question:\n%s", model.prompts[0])
	}
}

func TestContentExpertReusesStoredBinding(t *testing.T) {
	index := &fakeIndex{passages: []retrieval.Passage{{Text: "stored"}}}
	store, client := newTestFixture(t, index)

	first := testBinding()
	firstID, err := client.Resolve(context.Background(), testContentID, first)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	// A second registration with different parameters must not overwrite.
	second := testBinding()
	second.Vectara.TopK = 99
	secondID, err := client.Resolve(context.Background(), testContentID, second)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if firstID != secondID {
		t.Fatalf("binding ids differ: %q vs %q", firstID, secondID)
	}
	stored, err := store.Binding(context.Background(), firstID)
	if err != nil {
		t.Fatalf("Binding returned error: %v", err)
	}
	if stored.Vectara.TopK == 99 {
		t.Fatalf("stored binding was overwritten")
	}
}
