package usecase

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"answer-orchestrator/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// fakeLLM routes each chat call by prompt shape: reformulation, per-page
// relevance, or final synthesis. Replies echo enough of the prompt that
// assertions can check what flowed through.
type fakeLLM struct {
	mu sync.Mutex

	reformulatedQuery string
	failReformulate   bool
	failRelevance     bool
	failSynthesis     bool

	reformulateCalls int
	relevanceCalls   int
	synthesisCalls   int
}

func (f *fakeLLM) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user := messages[len(messages)-1].Content
	switch {
	case strings.Contains(user, "reformat the question"):
		f.reformulateCalls++
		if f.failReformulate {
			return "", domain.ErrLLMUnavailable
		}
		if f.reformulatedQuery != "" {
			return f.reformulatedQuery, nil
		}
		return "computer overheating prevention tips", nil
	case strings.Contains(user, "page content:"):
		f.relevanceCalls++
		if f.failRelevance {
			return "", domain.ErrLLMUnavailable
		}
		idx := strings.Index(user, "page content:")
		return "Relevant extract. " + strings.TrimSpace(user[idx+len("page content:"):]), nil
	default:
		f.synthesisCalls++
		if f.failSynthesis {
			return "", domain.ErrLLMUnavailable
		}
		return "Answer based on: " + user, nil
	}
}

func (f *fakeLLM) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reformulateCalls + f.relevanceCalls + f.synthesisCalls
}

// fakeSearch returns a scripted hit set and records the queries it saw.
type fakeSearch struct {
	mu      sync.Mutex
	hits    []domain.SearchHit
	err     error
	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query string, count int) ([]domain.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func (f *fakeSearch) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// fakeFetcher maps hit URLs to preset documents without any network use.
type fakeFetcher struct {
	docs map[string]domain.PageDocument
}

func (f *fakeFetcher) FetchAll(ctx context.Context, hits []domain.SearchHit) []domain.PageDocument {
	if len(hits) == 0 {
		return nil
	}
	docs := make([]domain.PageDocument, len(hits))
	for i, hit := range hits {
		if doc, ok := f.docs[hit.URL]; ok {
			docs[i] = doc
			continue
		}
		docs[i] = domain.PageDocument{URL: hit.URL, Status: domain.FetchFailed}
	}
	return docs
}

// fakeCache is an in-memory ResultCache.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]string
	unavailable bool
	storeCalls  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Lookup(ctx context.Context, key string) (string, domain.LookupResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable {
		return "", domain.LookupUnavailable
	}
	if value, ok := f.entries[key]; ok {
		return value, domain.LookupHit
	}
	return "", domain.LookupMiss
}

func (f *fakeCache) Store(ctx context.Context, key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storeCalls++
	if f.unavailable {
		return
	}
	f.entries[key] = value
}

func (f *fakeCache) Exists(ctx context.Context, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

func (f *fakeCache) Size(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable {
		return 0, domain.ErrCacheUnavailable
	}
	return int64(len(f.entries)), nil
}

func newTestUsecase(cache domain.ResultCache, llm domain.LLMClient, search domain.SearchClient, fetcher PageFetcher) AnswerQuestionUsecase {
	log := testLogger()
	return NewAnswerQuestionUsecase(
		cache,
		NewQueryReformulator(llm, log),
		search,
		fetcher,
		NewRelevanceSummarizer(llm, 10, 0, log),
		NewAnswerSynthesizer(llm, log),
		5,
		log,
	)
}
