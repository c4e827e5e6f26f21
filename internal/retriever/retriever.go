// Package retriever downloads search hits concurrently and converts each
// payload into a provenance-tagged page document.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"answer-orchestrator/internal/convert"
	"answer-orchestrator/internal/domain"
	"answer-orchestrator/internal/pipeline"
)

const (
	// Pages larger than this are cut off at the wire; the converter applies
	// its own text-level truncation afterwards.
	maxBodyBytes = 2 * 1024 * 1024

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.3"
)

// PageRetriever fetches every hit with a bounded worker pool. Each fetch has
// its own timeout; a failing fetch never cancels its siblings, and FetchAll
// returns only once every hit has reached a terminal status.
type PageRetriever struct {
	httpClient  *http.Client
	converter   *convert.Converter
	concurrency int64
	timeout     time.Duration
	logger      *slog.Logger
}

// NewPageRetriever builds a retriever. The concurrency limit and timeout come
// from process configuration and are fixed for the retriever's lifetime.
func NewPageRetriever(httpClient *http.Client, converter *convert.Converter, concurrency int, timeout time.Duration, logger *slog.Logger) *PageRetriever {
	if concurrency <= 0 {
		concurrency = 10
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PageRetriever{
		httpClient:  httpClient,
		converter:   converter,
		concurrency: int64(concurrency),
		timeout:     timeout,
		logger:      logger,
	}
}

// FetchAll retrieves every hit and returns one PageDocument per hit, in hit
// order. There is no partial or early return.
func (r *PageRetriever) FetchAll(ctx context.Context, hits []domain.SearchHit) []domain.PageDocument {
	if len(hits) == 0 {
		return nil
	}

	stage := pipeline.Stage[domain.SearchHit, domain.PageDocument]{
		Name:    "retrieve",
		Limit:   r.concurrency,
		Process: r.fetchOne,
	}

	start := time.Now()
	results := pipeline.Run(ctx, stage, hits)

	docs := make([]domain.PageDocument, len(hits))
	fetched := 0
	for i, res := range results {
		if res.Err != nil {
			// Only the semaphore acquire can fail here (context cancelled
			// before the task started); the fetch itself reports failure
			// through the document status.
			docs[i] = domain.PageDocument{URL: hits[i].URL, Status: domain.FetchFailed}
			continue
		}
		docs[i] = res.Value
		if docs[i].Status == domain.Fetched {
			fetched++
		}
	}

	r.logger.Info("page retrieval completed",
		"hits", len(hits),
		"fetched", fetched,
		"failed", len(hits)-fetched,
		"duration_ms", time.Since(start).Milliseconds())

	return docs
}

// fetchOne downloads and converts a single hit. Failures are captured in the
// document status, never returned as errors.
func (r *PageRetriever) fetchOne(ctx context.Context, hit domain.SearchHit) (domain.PageDocument, error) {
	failed := domain.PageDocument{URL: hit.URL, Status: domain.FetchFailed}

	if err := validateURL(hit.URL); err != nil {
		r.logger.Warn("skipping invalid url", "url", hit.URL, "error", err)
		return failed, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, hit.URL, nil)
	if err != nil {
		r.logger.Warn("failed to build request", "url", hit.URL, "error", err)
		return failed, nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("failed to fetch page", "url", hit.URL, "error", err)
		return failed, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("page returned non-200", "url", hit.URL, "status", resp.StatusCode)
		return failed, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		r.logger.Warn("failed to read page body", "url", hit.URL, "error", err)
		return failed, nil
	}

	mediaType := detectMediaType(resp.Header.Get("Content-Type"), hit.URL)

	content := r.converter.ToText(hit.URL, mediaType, body)
	if content == "" {
		r.logger.Warn("no text extractable from page", "url", hit.URL)
		return failed, nil
	}

	return domain.PageDocument{
		URL:       hit.URL,
		Status:    domain.Fetched,
		MediaType: mediaType,
		Content:   content,
	}, nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("url is empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return errors.New("url must contain a host")
	}
	return nil
}

func detectMediaType(contentType, pageURL string) domain.MediaType {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/pdf"),
		strings.HasSuffix(strings.ToLower(pageURL), ".pdf"):
		return domain.MediaPDF
	case strings.Contains(ct, "text/plain"):
		return domain.MediaPlain
	default:
		return domain.MediaHTML
	}
}
