package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"answer-orchestrator/internal/domain"
)

// AnswerSynthesizer combines all relevance summaries into the final answer
// with exactly one LLM call. This is the one stage whose backend failure is
// not swallowed: it propagates so the caller sees a hard failure and nothing
// is cached.
type AnswerSynthesizer struct {
	llm    domain.LLMClient
	logger *slog.Logger
}

func NewAnswerSynthesizer(llm domain.LLMClient, logger *slog.Logger) *AnswerSynthesizer {
	return &AnswerSynthesizer{llm: llm, logger: logger}
}

// Synthesize builds one prompt from every summarized (non-failed) entry plus
// the original question. An empty summary set still proceeds with an explicit
// placeholder, so the pipeline always produces a textual answer.
func (s *AnswerSynthesizer) Synthesize(ctx context.Context, question string, summaries []domain.RelevanceSummary) (domain.Answer, error) {
	usable := make([]domain.RelevanceSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.Status == domain.Summarized {
			usable = append(usable, summary)
		}
	}

	if len(usable) == 0 {
		s.logger.Warn("no relevant summaries available, synthesizing on empty context")
	}

	text, err := s.llm.Chat(ctx, synthesisMessages(question, usable))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %w", domain.ErrSynthesisUnavailable, err)
	}

	s.logger.Info("answer synthesized",
		"summaries_used", len(usable),
		"answer_len", len(text))

	return domain.Answer{Text: text}, nil
}
