package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrRetrievalFailed wraps every failure surfaced by an underlying index.
// Queries are not retried here.
var ErrRetrievalFailed = errors.New("retrieval failed")

// Passage is one ranked result from a content index.
type Passage struct {
	Text  string
	Score float64
}

// Index is a connected content index: query string in, ranked passages out.
type Index interface {
	Query(ctx context.Context, query string) ([]Passage, error)
}

// IndexOpener connects a validated binding to its backend.
type IndexOpener func(ctx context.Context, binding *Binding) (Index, error)

// ClientOptions configure a retrieval client.
type ClientOptions struct {
	Bindings BindingStore
	// Open overrides the default backend dispatch; tests install fakes here.
	Open IndexOpener
}

// Client resolves retriever bindings and issues pass-through queries against
// the bound index, concatenating passage text in result order.
type Client struct {
	bindings BindingStore
	open     IndexOpener

	mu      sync.Mutex
	indexes map[string]Index
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Bindings == nil {
		return nil, errors.New("retrieval: a binding store is required")
	}
	open := opts.Open
	if open == nil {
		open = OpenIndex
	}
	return &Client{
		bindings: opts.Bindings,
		open:     open,
		indexes:  make(map[string]Index),
	}, nil
}

// Resolve returns the id of a usable binding. With only an id the stored
// binding is looked up. With parameters the binding is created on first use
// (under a generated id when none is given); an already-stored binding wins,
// since parameters are immutable after creation. Supplying neither fails fast.
func (c *Client) Resolve(ctx context.Context, id string, binding *Binding) (string, error) {
	if binding == nil {
		if id == "" {
			return "", errors.New("retrieval: either a binding id or binding parameters are required")
		}
		if _, err := c.bindings.Binding(ctx, id); err != nil {
			return "", fmt.Errorf("retrieval: binding %q: %w", id, err)
		}
		return id, nil
	}
	if binding.ID == "" {
		binding.ID = id
	}
	if binding.ID == "" {
		binding.ID = uuid.NewString()
	}
	_, err := c.bindings.Binding(ctx, binding.ID)
	if err == nil {
		return binding.ID, nil
	}
	if !errors.Is(err, ErrBindingNotFound) {
		return "", fmt.Errorf("retrieval: binding %q: %w", binding.ID, err)
	}
	if err := binding.Validate(); err != nil {
		return "", err
	}
	if err := c.bindings.PutBinding(ctx, binding); err != nil {
		return "", fmt.Errorf("retrieval: store binding: %w", err)
	}
	return binding.ID, nil
}

// Retrieve queries the bound index and concatenates the passage text with no
// separator, preserving result order.
func (c *Client) Retrieve(ctx context.Context, bindingID, query string) (string, error) {
	index, err := c.index(ctx, bindingID)
	if err != nil {
		return "", err
	}
	passages, err := index.Query(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	var sb strings.Builder
	for _, p := range passages {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func (c *Client) index(ctx context.Context, bindingID string) (Index, error) {
	c.mu.Lock()
	if index, ok := c.indexes[bindingID]; ok {
		c.mu.Unlock()
		return index, nil
	}
	c.mu.Unlock()

	binding, err := c.bindings.Binding(ctx, bindingID)
	if err != nil {
		return nil, fmt.Errorf("retrieval: binding %q: %w", bindingID, err)
	}
	index, err := c.open(ctx, binding)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s index: %v", ErrRetrievalFailed, binding.Backend, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.indexes[bindingID]; ok {
		return cached, nil
	}
	c.indexes[bindingID] = index
	return index, nil
}

// OpenIndex is the default backend dispatch for validated bindings.
func OpenIndex(ctx context.Context, binding *Binding) (Index, error) {
	if err := binding.Validate(); err != nil {
		return nil, err
	}
	switch binding.Backend {
	case BackendVectara:
		return NewVectaraIndex(*binding.Vectara), nil
	case BackendPGVector:
		return NewPGVectorIndex(ctx, *binding.PGVector)
	case BackendNeo4j:
		return NewNeo4jIndex(*binding.Neo4j)
	}
	return nil, fmt.Errorf("retrieval: unknown backend %q", binding.Backend)
}
