package retrieval

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jIndex queries a Neo4j full-text index over passage nodes.
type Neo4jIndex struct {
	driver   neo4j.DriverWithContext
	database string
	index    string
	topK     int
}

func NewNeo4jIndex(params Neo4jParams) (*Neo4jIndex, error) {
	driver, err := neo4j.NewDriverWithContext(params.URI, neo4j.BasicAuth(params.Username, params.Password, ""))
	if err != nil {
		return nil, err
	}
	return &Neo4jIndex{
		driver:   driver,
		database: params.Database,
		index:    params.IndexName,
		topK:     params.TopK,
	}, nil
}

const neo4jPassageQuery = `
CALL db.index.fulltext.queryNodes($index, $query) YIELD node, score
RETURN node.text AS text, score
ORDER BY score DESC
LIMIT $limit
`

func (n *Neo4jIndex) Query(ctx context.Context, query string) ([]Passage, error) {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: n.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, neo4jPassageQuery, map[string]any{
		"index": n.index,
		"query": query,
		"limit": n.topK,
	})
	if err != nil {
		return nil, err
	}

	var passages []Passage
	for result.Next(ctx) {
		record := result.Record()
		passage := Passage{}
		if v, ok := record.Get("text"); ok {
			if text, ok := v.(string); ok {
				passage.Text = text
			}
		}
		if v, ok := record.Get("score"); ok {
			if score, ok := v.(float64); ok {
				passage.Score = score
			}
		}
		passages = append(passages, passage)
	}
	return passages, result.Err()
}

// Close releases the underlying driver.
func (n *Neo4jIndex) Close(ctx context.Context) error {
	if n == nil || n.driver == nil {
		return nil
	}
	return n.driver.Close(ctx)
}

var _ Index = (*Neo4jIndex)(nil)
