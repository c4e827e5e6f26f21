package usecase

import (
	"context"
	"log/slog"
	"time"

	"answer-orchestrator/internal/domain"
	"answer-orchestrator/internal/pipeline"
)

// RelevanceSummarizer issues one LLM call per fetched page, asking whether
// the page answers the question and extracting the relevant portion.
// Concurrency is bounded independently of the fetch stage; failed calls are
// isolated per page and never retried within a run.
type RelevanceSummarizer struct {
	llm         domain.LLMClient
	concurrency int64
	timeout     time.Duration
	logger      *slog.Logger
}

func NewRelevanceSummarizer(llm domain.LLMClient, concurrency int, timeout time.Duration, logger *slog.Logger) *RelevanceSummarizer {
	if concurrency <= 0 {
		concurrency = 10
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RelevanceSummarizer{
		llm:         llm,
		concurrency: int64(concurrency),
		timeout:     timeout,
		logger:      logger,
	}
}

// SummarizeAll produces one RelevanceSummary per successfully fetched
// document. It joins over all dispatched calls; the result holds a terminal
// status for every input document that was eligible.
func (s *RelevanceSummarizer) SummarizeAll(ctx context.Context, question string, docs []domain.PageDocument) []domain.RelevanceSummary {
	eligible := make([]domain.PageDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.Status == domain.Fetched {
			eligible = append(eligible, doc)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	stage := pipeline.Stage[domain.PageDocument, domain.RelevanceSummary]{
		Name:    "summarize",
		Limit:   s.concurrency,
		Process: func(ctx context.Context, doc domain.PageDocument) (domain.RelevanceSummary, error) {
			return s.summarizeOne(ctx, question, doc), nil
		},
	}

	start := time.Now()
	results := pipeline.Run(ctx, stage, eligible)

	summaries := make([]domain.RelevanceSummary, len(eligible))
	succeeded := 0
	for i, res := range results {
		if res.Err != nil {
			summaries[i] = domain.RelevanceSummary{URL: eligible[i].URL, Status: domain.SummarizeFailed}
			continue
		}
		summaries[i] = res.Value
		if summaries[i].Status == domain.Summarized {
			succeeded++
		}
	}

	s.logger.Info("relevance summarization completed",
		"documents", len(eligible),
		"summarized", succeeded,
		"failed", len(eligible)-succeeded,
		"duration_ms", time.Since(start).Milliseconds())

	return summaries
}

func (s *RelevanceSummarizer) summarizeOne(ctx context.Context, question string, doc domain.PageDocument) domain.RelevanceSummary {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.llm.Chat(callCtx, relevanceMessages(question, doc.Content))
	if err != nil {
		s.logger.Warn("relevance call failed", "url", doc.URL, "error", err)
		return domain.RelevanceSummary{URL: doc.URL, Status: domain.SummarizeFailed}
	}

	return domain.RelevanceSummary{URL: doc.URL, Status: domain.Summarized, Text: text}
}
