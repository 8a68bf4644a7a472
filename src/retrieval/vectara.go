package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const vectaraEndpoint = "https://api.vectara.io/v1/query"

// VectaraIndex queries a hosted Vectara corpus over its JSON query API.
type VectaraIndex struct {
	params   VectaraParams
	client   *http.Client
	endpoint string
}

func NewVectaraIndex(params VectaraParams) *VectaraIndex {
	return &VectaraIndex{
		params:   params,
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: vectaraEndpoint,
	}
}

type vectaraLexicalConfig struct {
	Lambda float64 `json:"lambda"`
}

type vectaraCorpusKey struct {
	CustomerID int64                `json:"customerId"`
	CorpusID   int64                `json:"corpusId"`
	Lexical    vectaraLexicalConfig `json:"lexicalInterpolationConfig"`
}

type vectaraQuery struct {
	Query      string             `json:"query"`
	NumResults int                `json:"numResults"`
	CorpusKey  []vectaraCorpusKey `json:"corpusKey"`
}

type vectaraRequest struct {
	Query []vectaraQuery `json:"query"`
}

type vectaraResponse struct {
	ResponseSet []struct {
		Response []struct {
			Text  string  `json:"text"`
			Score float64 `json:"score"`
		} `json:"response"`
	} `json:"responseSet"`
}

func (v *VectaraIndex) Query(ctx context.Context, query string) ([]Passage, error) {
	body := vectaraRequest{Query: []vectaraQuery{{
		Query:      query,
		NumResults: v.params.TopK,
		CorpusKey: []vectaraCorpusKey{{
			CustomerID: v.params.CustomerID,
			CorpusID:   v.params.CorpusID,
			Lexical:    vectaraLexicalConfig{Lambda: v.params.Lambda},
		}},
	}}}

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, buf)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", v.params.APIKey)
	req.Header.Set("customer-id", strconv.FormatInt(v.params.CustomerID, 10))

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vectara query failed: %s", resp.Status)
	}

	var data vectaraResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var passages []Passage
	for _, set := range data.ResponseSet {
		for _, item := range set.Response {
			passages = append(passages, Passage{Text: item.Text, Score: item.Score})
		}
	}
	return passages, nil
}

var _ Index = (*VectaraIndex)(nil)
