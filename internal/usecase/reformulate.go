package usecase

import (
	"context"
	"log/slog"
	"strings"

	"answer-orchestrator/internal/domain"
)

// QueryReformulator rewrites a natural-language question into a
// search-engine-friendly query with one LLM call. The rewritten query is used
// only for the search step and never persisted.
type QueryReformulator struct {
	llm    domain.LLMClient
	logger *slog.Logger
}

func NewQueryReformulator(llm domain.LLMClient, logger *slog.Logger) *QueryReformulator {
	return &QueryReformulator{llm: llm, logger: logger}
}

// Reformulate returns the search query for the question.
func (r *QueryReformulator) Reformulate(ctx context.Context, question string) (string, error) {
	reply, err := r.llm.Chat(ctx, reformulateMessages(question))
	if err != nil {
		return "", err
	}

	query := strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), `"`))
	if query == "" {
		r.logger.Warn("reformulation produced empty query, keeping original question")
		return question, nil
	}

	r.logger.Debug("question reformulated", "query", query)
	return query, nil
}
