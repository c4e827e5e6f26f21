package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"answer-orchestrator/internal/domain"
)

func threeHits() []domain.SearchHit {
	return []domain.SearchHit{
		{ID: "1", Title: "Cooling basics", URL: "https://example.com/a", Snippet: "fans"},
		{ID: "2", Title: "Thermal paste", URL: "https://example.com/b", Snippet: "paste"},
		{ID: "3", Title: "Dead link", URL: "https://example.com/c", Snippet: "gone"},
	}
}

func twoOfThreeFetched() *fakeFetcher {
	return &fakeFetcher{docs: map[string]domain.PageDocument{
		"https://example.com/a": {
			URL:     "https://example.com/a",
			Status:  domain.Fetched,
			Content: "source: https://example.com/a\nKeep vents clear and clean the fans.",
		},
		"https://example.com/b": {
			URL:     "https://example.com/b",
			Status:  domain.Fetched,
			Content: "source: https://example.com/b\nReplace dried thermal paste yearly.",
		},
		// /c intentionally absent: fetch fails.
	}}
}

func TestAnswerQuestionUsecase_Execute(t *testing.T) {
	ctx := context.Background()
	const question = "How do I prevent computer overheating?"

	t.Run("should reject empty question", func(t *testing.T) {
		uc := newTestUsecase(newFakeCache(), &fakeLLM{}, &fakeSearch{}, &fakeFetcher{})

		_, err := uc.Execute(ctx, "   ")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
	})

	t.Run("should run end to end and memoize under the original question", func(t *testing.T) {
		cache := newFakeCache()
		llm := &fakeLLM{}
		search := &fakeSearch{hits: threeHits()}
		uc := newTestUsecase(cache, llm, search, twoOfThreeFetched())

		answer, err := uc.Execute(ctx, question)

		require.NoError(t, err)
		assert.False(t, answer.Cached)
		assert.NotEmpty(t, answer.Text)
		// Search used the reformulated query, not the raw question.
		require.Equal(t, 1, search.callCount())
		assert.Equal(t, "computer overheating prevention tips", search.queries[0])
		// One relevance call per fetched page, one synthesis call.
		assert.Equal(t, 2, llm.relevanceCalls)
		assert.Equal(t, 1, llm.synthesisCalls)
		// Answer mentions at least one of the surviving sources.
		assert.Contains(t, answer.Text, "https://example.com/")
		// Cached under the verbatim question text.
		assert.True(t, cache.Exists(ctx, question))
	})

	t.Run("should serve second identical question from cache without new calls", func(t *testing.T) {
		cache := newFakeCache()
		llm := &fakeLLM{}
		search := &fakeSearch{hits: threeHits()}
		uc := newTestUsecase(cache, llm, search, twoOfThreeFetched())

		first, err := uc.Execute(ctx, question)
		require.NoError(t, err)

		searchCalls := search.callCount()
		llmCalls := llm.totalCalls()

		second, err := uc.Execute(ctx, question)
		require.NoError(t, err)

		assert.True(t, second.Cached)
		assert.Equal(t, first.Text, second.Text)
		assert.Equal(t, searchCalls, search.callCount())
		assert.Equal(t, llmCalls, llm.totalCalls())
	})

	t.Run("should treat differently phrased questions as distinct cache entries", func(t *testing.T) {
		cache := newFakeCache()
		llm := &fakeLLM{}
		search := &fakeSearch{hits: threeHits()}
		uc := newTestUsecase(cache, llm, search, twoOfThreeFetched())

		_, err := uc.Execute(ctx, question)
		require.NoError(t, err)
		_, err = uc.Execute(ctx, question+" ")
		require.NoError(t, err)

		assert.Equal(t, 2, search.callCount())
	})

	t.Run("should survive partial fetch failure", func(t *testing.T) {
		uc := newTestUsecase(newFakeCache(), &fakeLLM{}, &fakeSearch{hits: threeHits()}, twoOfThreeFetched())

		answer, err := uc.Execute(ctx, question)

		require.NoError(t, err)
		assert.NotEmpty(t, answer.Text)
	})

	t.Run("should degrade to placeholder answer when every fetch fails", func(t *testing.T) {
		uc := newTestUsecase(newFakeCache(), &fakeLLM{}, &fakeSearch{hits: threeHits()}, &fakeFetcher{})

		answer, err := uc.Execute(ctx, question)

		require.NoError(t, err)
		assert.Contains(t, answer.Text, noResultsPlaceholder)
	})

	t.Run("should degrade to placeholder answer when every summarization fails", func(t *testing.T) {
		llm := &fakeLLM{failRelevance: true}
		uc := newTestUsecase(newFakeCache(), llm, &fakeSearch{hits: threeHits()}, twoOfThreeFetched())

		answer, err := uc.Execute(ctx, question)

		require.NoError(t, err)
		assert.Contains(t, answer.Text, noResultsPlaceholder)
	})

	t.Run("should fail the run when the search provider is unreachable", func(t *testing.T) {
		cache := newFakeCache()
		search := &fakeSearch{err: domain.ErrSearchUnavailable}
		uc := newTestUsecase(cache, &fakeLLM{}, search, &fakeFetcher{})

		_, err := uc.Execute(ctx, question)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
		assert.Zero(t, cache.storeCalls)
	})

	t.Run("should continue with zero hits on a malformed search response", func(t *testing.T) {
		search := &fakeSearch{err: domain.ErrSearchParse}
		uc := newTestUsecase(newFakeCache(), &fakeLLM{}, search, &fakeFetcher{})

		answer, err := uc.Execute(ctx, question)

		require.NoError(t, err)
		assert.Contains(t, answer.Text, noResultsPlaceholder)
	})

	t.Run("should fall back to the raw question when reformulation fails", func(t *testing.T) {
		llm := &fakeLLM{failReformulate: true}
		search := &fakeSearch{hits: threeHits()}
		uc := newTestUsecase(newFakeCache(), llm, search, twoOfThreeFetched())

		answer, err := uc.Execute(ctx, question)

		require.NoError(t, err)
		assert.NotEmpty(t, answer.Text)
		require.Equal(t, 1, search.callCount())
		assert.Equal(t, question, search.queries[0])
	})

	t.Run("should propagate synthesis failure and cache nothing", func(t *testing.T) {
		cache := newFakeCache()
		llm := &fakeLLM{failSynthesis: true}
		uc := newTestUsecase(cache, llm, &fakeSearch{hits: threeHits()}, twoOfThreeFetched())

		_, err := uc.Execute(ctx, question)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSynthesisUnavailable)
		assert.Zero(t, cache.storeCalls)
		assert.False(t, cache.Exists(ctx, question))
	})

	t.Run("should treat an unavailable cache as a miss", func(t *testing.T) {
		cache := newFakeCache()
		cache.unavailable = true
		uc := newTestUsecase(cache, &fakeLLM{}, &fakeSearch{hits: threeHits()}, twoOfThreeFetched())

		answer, err := uc.Execute(ctx, question)

		require.NoError(t, err)
		assert.NotEmpty(t, answer.Text)
		assert.False(t, answer.Cached)
	})
}
