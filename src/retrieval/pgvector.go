package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGVectorIndex searches a Postgres table of pgvector-embedded passages.
// Queries are embedded locally before the similarity search.
type PGVectorIndex struct {
	pool     *pgxpool.Pool
	embedder QueryEmbedder
	table    string
	topK     int
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// NewPGVectorIndex connects to Postgres and prepares a local query embedder.
func NewPGVectorIndex(ctx context.Context, params PGVectorParams) (*PGVectorIndex, error) {
	if !identifierPattern.MatchString(params.Table) {
		return nil, fmt.Errorf("invalid table name %q", params.Table)
	}
	pool, err := pgxpool.New(ctx, params.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	embedder, err := NewFastEmbedder()
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &PGVectorIndex{pool: pool, embedder: embedder, table: params.Table, topK: params.TopK}, nil
}

func (p *PGVectorIndex) Query(ctx context.Context, query string) ([]Passage, error) {
	vec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	sql := fmt.Sprintf(`
        SELECT content, (embedding <-> $1::vector) AS score
        FROM %s
        ORDER BY embedding <-> $1::vector
        LIMIT $2;
        `, p.table)
	rows, err := p.pool.Query(ctx, sql, vectorLiteral(vec), p.topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passages []Passage
	for rows.Next() {
		var passage Passage
		if err := rows.Scan(&passage.Text, &passage.Score); err != nil {
			return nil, err
		}
		passages = append(passages, passage)
	}
	return passages, rows.Err()
}

// Close releases the connection pool and the embedding model.
func (p *PGVectorIndex) Close() error {
	if p == nil {
		return nil
	}
	if p.pool != nil {
		p.pool.Close()
	}
	if closer, ok := p.embedder.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func vectorLiteral(vec []float32) string {
	encoded, _ := json.Marshal(vec)
	return fmt.Sprintf("[%s]", strings.Trim(string(encoded), "[]"))
}

var _ Index = (*PGVectorIndex)(nil)
