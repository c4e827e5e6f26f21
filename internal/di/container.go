package di

import (
	"log/slog"

	"answer-orchestrator/internal/adapter/bingsearch"
	"answer-orchestrator/internal/adapter/llmchat"
	"answer-orchestrator/internal/adapter/rediscache"
	"answer-orchestrator/internal/convert"
	"answer-orchestrator/internal/infra/config"
	"answer-orchestrator/internal/infra/httpclient"
	"answer-orchestrator/internal/retriever"
	"answer-orchestrator/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Cache         *rediscache.Cache
	AnswerUsecase usecase.AnswerQuestionUsecase
}

// NewApplicationComponents wires all dependencies from config.
func NewApplicationComponents(cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	cache, err := rediscache.New(cfg.RedisURL, cfg.MemoryCacheSize, log)
	if err != nil {
		return nil, err
	}

	// Shared HTTP clients with connection pooling.
	searchHTTP := httpclient.NewPooledClient(cfg.FetchTimeout * 2)
	fetchHTTP := httpclient.NewPooledClient(0) // per-fetch timeout is handled by the retriever
	llmHTTP := httpclient.NewPooledClient(cfg.SummarizeTimeout * 2)

	searchClient := bingsearch.NewClient(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.SearchMarket, searchHTTP, log)
	llmClient := llmchat.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTemperature, llmHTTP, log)

	// No PDF extractor is configured yet; PDF hits are treated as unfetchable.
	converter := convert.NewConverter(nil, log)
	pageRetriever := retriever.NewPageRetriever(fetchHTTP, converter, cfg.FetchConcurrency, cfg.FetchTimeout, log)

	reformulator := usecase.NewQueryReformulator(llmClient, log)
	summarizer := usecase.NewRelevanceSummarizer(llmClient, cfg.SummarizeConcurrency, cfg.SummarizeTimeout, log)
	synthesizer := usecase.NewAnswerSynthesizer(llmClient, log)

	answerUsecase := usecase.NewAnswerQuestionUsecase(
		cache,
		reformulator,
		searchClient,
		pageRetriever,
		summarizer,
		synthesizer,
		cfg.SearchResultCount,
		log,
	)

	return &ApplicationComponents{
		Cache:         cache,
		AnswerUsecase: answerUsecase,
	}, nil
}

// Close releases held connections.
func (c *ApplicationComponents) Close() error {
	return c.Cache.Close()
}
