// Package bingsearch implements the search provider contract against the
// Bing Web Search v7 REST API.
package bingsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"answer-orchestrator/internal/domain"
)

const authHeaderName = "Ocp-Apim-Subscription-Key"

// Client calls the Bing Web Search API. Outbound calls are paced to one
// request per second per client so bursts of questions cannot trip the
// provider's rate limit.
type Client struct {
	endpoint   string
	apiKey     string
	market     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a search client. The http.Client is shared with the rest
// of the process via the httpclient pool.
func NewClient(endpoint, apiKey, market string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		market:     market,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		logger:     logger,
	}
}

// searchResponse mirrors the provider wire shape. The body is validated here
// at the boundary; nothing downstream sees loosely-typed maps.
type searchResponse struct {
	WebPages struct {
		Value []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			URL     string `json:"url"`
			Snippet string `json:"snippet"`
		} `json:"value"`
	} `json:"webPages"`
}

// Search returns the provider's ranked hits for the query.
func (c *Client) Search(ctx context.Context, query string, count int) ([]domain.SearchHit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("mkt", c.market)
	params.Set("count", strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(authHeaderName, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("search request failed", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("search provider returned non-200",
			"query", query, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrSearchUnavailable, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("search response decode failed", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchParse, err)
	}

	hits := make([]domain.SearchHit, 0, len(payload.WebPages.Value))
	for _, v := range payload.WebPages.Value {
		hits = append(hits, domain.SearchHit{
			ID:      v.ID,
			Title:   v.Name,
			URL:     v.URL,
			Snippet: v.Snippet,
		})
	}

	c.logger.Info("search completed",
		"query", query,
		"hits", len(hits),
		"duration_ms", time.Since(start).Milliseconds())

	return hits, nil
}
