package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"pitchpro/models"
)

// Index names on the hosted service.
const (
	SessionsIndex     = "sessions"
	GroupsIndex       = "PermanentSessionsId"
	TransactionsIndex = "transactions"
)

// ErrNotConfigured is returned for every query when search credentials are
// absent. Callers surface it as a persistent error state; there is nothing
// to retry.
var ErrNotConfigured = errors.New("search service is not configured")

// Client talks to the hosted search index over its REST query contract.
type Client struct {
	appID  string
	apiKey string
	http   *http.Client
}

// NewClientFromEnv reads SEARCH_APP_ID / SEARCH_API_KEY. A client is always
// returned; one built without credentials answers every query with
// ErrNotConfigured.
func NewClientFromEnv() *Client {
	return &Client{
		appID:  os.Getenv("SEARCH_APP_ID"),
		apiKey: os.Getenv("SEARCH_API_KEY"),
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.appID != "" && c.apiKey != ""
}

// Query runs one paginated search against a named index.
func (c *Client) Query(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]any{
		"query":       req.Query,
		"filters":     req.Filters,
		"page":        req.Page,
		"hitsPerPage": req.HitsPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	url := fmt.Sprintf("https://%s-dsn.algolia.net/1/indexes/%s/query", c.appID, req.IndexName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Algolia-Application-Id", c.appID)
	httpReq.Header.Set("X-Algolia-API-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request: index %s returned %d", req.IndexName, resp.StatusCode)
	}

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}
