package retrieval

import (
	"context"
	"errors"
	"fmt"
)

// Supported index backends. Unknown tags are rejected at construction rather
// than deferred to the first query.
const (
	BackendVectara  = "vectara"
	BackendPGVector = "pgvector"
	BackendNeo4j    = "neo4j"
)

// VectaraParams configure a hosted Vectara corpus.
type VectaraParams struct {
	CustomerID int64   `bson:"customer_id"`
	CorpusID   int64   `bson:"corpus_id"`
	APIKey     string  `bson:"api_key"`
	Lambda     float64 `bson:"lambda"`
	TopK       int     `bson:"top_k"`
}

// PGVectorParams configure a Postgres table holding pgvector-embedded passages.
type PGVectorParams struct {
	ConnString string `bson:"conn_string"`
	Table      string `bson:"table"`
	TopK       int    `bson:"top_k"`
}

// Neo4jParams configure a Neo4j full-text passage index.
type Neo4jParams struct {
	URI       string `bson:"uri"`
	Username  string `bson:"username"`
	Password  string `bson:"password"`
	Database  string `bson:"database"`
	IndexName string `bson:"index_name"`
	TopK      int    `bson:"top_k"`
}

// Binding is the stored configuration identifying which content index a
// content-backed role queries. Parameters are immutable after creation;
// callers wanting different parameters create a new binding.
type Binding struct {
	ID       string          `bson:"_id"`
	Backend  string          `bson:"backend"`
	Vectara  *VectaraParams  `bson:"vectara,omitempty"`
	PGVector *PGVectorParams `bson:"pgvector,omitempty"`
	Neo4j    *Neo4jParams    `bson:"neo4j,omitempty"`
}

const defaultTopK = 5

// Validate rejects unknown backend tags and missing parameter blocks, and
// fills backend defaults.
func (b *Binding) Validate() error {
	switch b.Backend {
	case BackendVectara:
		if b.Vectara == nil {
			return errors.New("retrieval: vectara binding requires parameters")
		}
		if b.Vectara.APIKey == "" {
			return errors.New("retrieval: vectara binding requires an api key")
		}
		if b.Vectara.Lambda == 0 {
			b.Vectara.Lambda = 0.025
		}
		if b.Vectara.TopK <= 0 {
			b.Vectara.TopK = defaultTopK
		}
	case BackendPGVector:
		if b.PGVector == nil || b.PGVector.ConnString == "" {
			return errors.New("retrieval: pgvector binding requires a connection string")
		}
		if b.PGVector.Table == "" {
			b.PGVector.Table = "passages"
		}
		if b.PGVector.TopK <= 0 {
			b.PGVector.TopK = defaultTopK
		}
	case BackendNeo4j:
		if b.Neo4j == nil || b.Neo4j.URI == "" {
			return errors.New("retrieval: neo4j binding requires a uri")
		}
		if b.Neo4j.IndexName == "" {
			b.Neo4j.IndexName = "passage_text"
		}
		if b.Neo4j.TopK <= 0 {
			b.Neo4j.TopK = defaultTopK
		}
	default:
		return fmt.Errorf("retrieval: unknown backend %q", b.Backend)
	}
	return nil
}

// ErrBindingNotFound is returned by binding stores when no binding exists
// under the requested id.
var ErrBindingNotFound = errors.New("retrieval: binding not found")

// BindingStore persists bindings in the content_agents collection. Implemented
// by the memory package's document stores. Binding reports absence with an
// error satisfying errors.Is(err, ErrBindingNotFound).
type BindingStore interface {
	Binding(ctx context.Context, id string) (*Binding, error)
	PutBinding(ctx context.Context, binding *Binding) error
}
