package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"answer-orchestrator/internal/domain"
)

// PageFetcher is the retrieval stage as the orchestrator consumes it.
type PageFetcher interface {
	FetchAll(ctx context.Context, hits []domain.SearchHit) []domain.PageDocument
}

// AnswerQuestionUsecase runs the full question-answering pipeline.
type AnswerQuestionUsecase interface {
	// Execute answers the question, serving repeated questions from the
	// result cache. Synchronous from the caller's perspective.
	Execute(ctx context.Context, question string) (domain.Answer, error)
}

type answerQuestionUsecase struct {
	cache        domain.ResultCache
	reformulator *QueryReformulator
	search       domain.SearchClient
	retriever    PageFetcher
	summarizer   *RelevanceSummarizer
	synthesizer  *AnswerSynthesizer
	resultCount  int
	logger       *slog.Logger
}

// NewAnswerQuestionUsecase wires the pipeline stages together. The stages
// carry their own concurrency limiters, constructed once per process and
// shared across runs.
func NewAnswerQuestionUsecase(
	cache domain.ResultCache,
	reformulator *QueryReformulator,
	search domain.SearchClient,
	retriever PageFetcher,
	summarizer *RelevanceSummarizer,
	synthesizer *AnswerSynthesizer,
	resultCount int,
	logger *slog.Logger,
) AnswerQuestionUsecase {
	if resultCount <= 0 {
		resultCount = 5
	}
	return &answerQuestionUsecase{
		cache:        cache,
		reformulator: reformulator,
		search:       search,
		retriever:    retriever,
		summarizer:   summarizer,
		synthesizer:  synthesizer,
		resultCount:  resultCount,
		logger:       logger,
	}
}

func (u *answerQuestionUsecase) Execute(ctx context.Context, question string) (domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, domain.ErrEmptyQuestion
	}

	runID := uuid.NewString()
	log := u.logger.With("run_id", runID)
	start := time.Now()

	state := StateIdle
	advance := func(next RunState) {
		log.Debug("pipeline transition", "from", state.String(), "to", next.String())
		state = next
	}

	// The question text is the cache key verbatim: case- and
	// whitespace-sensitive, no reformulation applied. Differently-phrased
	// questions land on distinct entries.
	advance(StateCacheCheck)
	if cached, result := u.cache.Lookup(ctx, question); result == domain.LookupHit {
		advance(StateDone)
		log.Info("answered from cache", "duration_ms", time.Since(start).Milliseconds())
		return domain.Answer{Text: cached, Cached: true}, nil
	}

	// Reformulation failure falls back to searching with the raw question.
	advance(StateReformulating)
	query, err := u.reformulator.Reformulate(ctx, question)
	if err != nil {
		log.Warn("reformulation failed, searching with raw question", "error", err)
		query = question
	}

	advance(StateSearching)
	hits, err := u.search.Search(ctx, query, u.resultCount)
	switch {
	case errors.Is(err, domain.ErrSearchUnavailable):
		advance(StateFailed)
		log.Error("search provider unreachable", "error", err)
		return domain.Answer{}, err
	case err != nil:
		// A malformed response body degrades to an empty hit set; the
		// placeholder path below still produces an answer.
		log.Warn("search results unusable, continuing with zero hits", "error", err)
		hits = nil
	}

	advance(StateRetrieving)
	docs := u.retriever.FetchAll(ctx, hits)

	advance(StateSummarizing)
	summaries := u.summarizer.SummarizeAll(ctx, question, docs)

	advance(StateSynthesizing)
	answer, err := u.synthesizer.Synthesize(ctx, question, summaries)
	if err != nil {
		advance(StateFailed)
		log.Error("synthesis failed, nothing cached", "error", err)
		return domain.Answer{}, err
	}

	advance(StateCaching)
	u.cache.Store(ctx, question, answer.Text)

	advance(StateDone)
	log.Info("pipeline run completed",
		"hits", len(hits),
		"summaries", len(summaries),
		"duration_ms", time.Since(start).Milliseconds())

	return answer, nil
}
