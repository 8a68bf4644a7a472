package retrieval

import (
	"context"
	"errors"
	"testing"
)

type fakeBindingStore struct {
	bindings map[string]Binding
	err      error
}

func newFakeBindingStore() *fakeBindingStore {
	return &fakeBindingStore{bindings: make(map[string]Binding)}
}

func (s *fakeBindingStore) Binding(_ context.Context, id string) (*Binding, error) {
	if s.err != nil {
		return nil, s.err
	}
	b, ok := s.bindings[id]
	if !ok {
		return nil, ErrBindingNotFound
	}
	return &b, nil
}

func (s *fakeBindingStore) PutBinding(_ context.Context, b *Binding) error {
	if s.err != nil {
		return s.err
	}
	s.bindings[b.ID] = *b
	return nil
}

type stubIndex struct {
	passages []Passage
	err      error
	queries  []string
}

func (s *stubIndex) Query(_ context.Context, query string) ([]Passage, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.passages, nil
}

func vectaraBinding(id string) *Binding {
	return &Binding{
		ID:      id,
		Backend: BackendVectara,
		Vectara: &VectaraParams{CustomerID: 7, CorpusID: 3, APIKey: "k"},
	}
}

func newStubClient(t *testing.T, store BindingStore, index Index) *Client {
	t.Helper()
	client, err := NewClient(ClientOptions{
		Bindings: store,
		Open: func(context.Context, *Binding) (Index, error) {
			return index, nil
		},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestResolveRequiresIDOrParameters(t *testing.T) {
	client := newStubClient(t, newFakeBindingStore(), &stubIndex{})
	if _, err := client.Resolve(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error with neither id nor parameters")
	}
}

func TestResolveLooksUpExistingBinding(t *testing.T) {
	store := newFakeBindingStore()
	store.bindings["b1"] = *vectaraBinding("b1")
	client := newStubClient(t, store, &stubIndex{})

	id, err := client.Resolve(context.Background(), "b1", nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != "b1" {
		t.Fatalf("id = %q", id)
	}

	if _, err := client.Resolve(context.Background(), "missing", nil); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("error = %v, want ErrBindingNotFound", err)
	}
}

func TestResolveCreatesBindingOnFirstUse(t *testing.T) {
	store := newFakeBindingStore()
	client := newStubClient(t, store, &stubIndex{})

	binding := vectaraBinding("")
	id, err := client.Resolve(context.Background(), "content-1", binding)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != "content-1" {
		t.Fatalf("id = %q, want the supplied id", id)
	}
	stored := store.bindings["content-1"]
	if stored.Vectara.TopK != defaultTopK {
		t.Fatalf("defaults not applied: %+v", stored.Vectara)
	}
	if stored.Vectara.Lambda != 0.025 {
		t.Fatalf("lambda default = %v", stored.Vectara.Lambda)
	}
}

func TestResolveGeneratesIDWhenNoneGiven(t *testing.T) {
	store := newFakeBindingStore()
	client := newStubClient(t, store, &stubIndex{})

	id, err := client.Resolve(context.Background(), "", vectaraBinding(""))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a generated id")
	}
	if _, ok := store.bindings[id]; !ok {
		t.Fatalf("binding not stored under generated id")
	}
}

func TestResolveKeepsStoredParameters(t *testing.T) {
	store := newFakeBindingStore()
	client := newStubClient(t, store, &stubIndex{})

	if _, err := client.Resolve(context.Background(), "b1", vectaraBinding("")); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	replacement := vectaraBinding("")
	replacement.Vectara.CorpusID = 99
	if _, err := client.Resolve(context.Background(), "b1", replacement); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if store.bindings["b1"].Vectara.CorpusID == 99 {
		t.Fatalf("stored binding parameters were replaced")
	}
}

func TestResolveRejectsInvalidParameters(t *testing.T) {
	client := newStubClient(t, newFakeBindingStore(), &stubIndex{})
	_, err := client.Resolve(context.Background(), "b1", &Binding{Backend: "elastic"})
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestRetrieveConcatenatesPassages(t *testing.T) {
	store := newFakeBindingStore()
	store.bindings["b1"] = *vectaraBinding("b1")
	index := &stubIndex{passages: []Passage{
		{Text: "alpha.", Score: 0.9},
		{Text: "beta.", Score: 0.5},
	}}
	client := newStubClient(t, store, index)

	got, err := client.Retrieve(context.Background(), "b1", "question")
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if got != "alpha.beta." {
		t.Fatalf("Retrieve = %q, want passages joined without separator", got)
	}
	if index.queries[0] != "question" {
		t.Fatalf("query = %q", index.queries[0])
	}
}

func TestRetrieveEmptyResultIsEmptyString(t *testing.T) {
	store := newFakeBindingStore()
	store.bindings["b1"] = *vectaraBinding("b1")
	client := newStubClient(t, store, &stubIndex{})

	got, err := client.Retrieve(context.Background(), "b1", "question")
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if got != "" {
		t.Fatalf("Retrieve = %q, want empty string", got)
	}
}

func TestRetrieveWrapsIndexFailure(t *testing.T) {
	store := newFakeBindingStore()
	store.bindings["b1"] = *vectaraBinding("b1")
	index := &stubIndex{err: errors.New("corpus unreachable")}
	client := newStubClient(t, store, index)

	_, err := client.Retrieve(context.Background(), "b1", "question")
	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("error = %v, want ErrRetrievalFailed", err)
	}
}

func TestRetrieveUnknownBinding(t *testing.T) {
	client := newStubClient(t, newFakeBindingStore(), &stubIndex{})
	if _, err := client.Retrieve(context.Background(), "nope", "q"); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("error = %v, want ErrBindingNotFound", err)
	}
}

func TestValidateFillsBackendDefaults(t *testing.T) {
	b := &Binding{Backend: BackendPGVector, PGVector: &PGVectorParams{ConnString: "postgres://x"}}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if b.PGVector.Table != "passages" || b.PGVector.TopK != defaultTopK {
		t.Fatalf("pgvector defaults = %+v", b.PGVector)
	}

	n := &Binding{Backend: BackendNeo4j, Neo4j: &Neo4jParams{URI: "neo4j://localhost"}}
	if err := n.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if n.Neo4j.IndexName != "passage_text" || n.Neo4j.TopK != defaultTopK {
		t.Fatalf("neo4j defaults = %+v", n.Neo4j)
	}
}

func TestValidateRejectsMissingParameters(t *testing.T) {
	cases := []*Binding{
		{Backend: BackendVectara},
		{Backend: BackendVectara, Vectara: &VectaraParams{CustomerID: 1, CorpusID: 1}},
		{Backend: BackendPGVector},
		{Backend: BackendNeo4j},
		{Backend: "elastic"},
	}
	for _, b := range cases {
		if err := b.Validate(); err == nil {
			t.Errorf("Validate accepted %+v", b)
		}
	}
}
