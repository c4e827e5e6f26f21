package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	RedisURL        string
	MemoryCacheSize int

	SearchEndpoint    string
	SearchAPIKey      string
	SearchMarket      string
	SearchResultCount int

	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTemperature float64

	FetchConcurrency     int
	FetchTimeout         time.Duration
	SummarizeConcurrency int
	SummarizeTimeout     time.Duration
}

func Load() *Config {
	// Best effort: local development keeps secrets in .env, deployments
	// inject real environment variables.
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8090"),

		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		MemoryCacheSize: getEnvInt("MEMORY_CACHE_SIZE", 1024),

		SearchEndpoint:    getEnv("SEARCH_ENDPOINT", "https://api.bing.microsoft.com/v7.0/search"),
		SearchAPIKey:      getEnv("BING_SEARCH_V7_WEB_SEARCH_SUBSCRIPTION_KEY", ""),
		SearchMarket:      getEnv("SEARCH_MARKET", "en-us"),
		SearchResultCount: getEnvInt("SEARCH_RESULT_COUNT", 5),

		LLMBaseURL:     getEnv("LLM_BASE_URL", "http://localhost:1234/v1"),
		LLMAPIKey:      getEnv("OPENAI_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.2),

		FetchConcurrency:     getEnvInt("FETCH_CONCURRENCY", 10),
		FetchTimeout:         getEnvDuration("FETCH_TIMEOUT", 5*time.Second),
		SummarizeConcurrency: getEnvInt("SUMMARIZE_CONCURRENCY", 10),
		SummarizeTimeout:     getEnvDuration("SUMMARIZE_TIMEOUT", 60*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
