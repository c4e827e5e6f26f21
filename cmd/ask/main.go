package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"answer-orchestrator/internal/di"
	"answer-orchestrator/internal/infra/config"
)

var (
	version = "dev"

	// Global flags
	verbose bool

	// Ask command flags
	noCache bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "ask [question]",
	Short:   "Answer a question using web search and an LLM",
	Version: version,
	Args:    cobra.MinimumNArgs(1),
	Long: `Answer a single question from the command line.

The question is reformulated into a search query, matching pages are
fetched and summarized concurrently, and a final answer is synthesized
from the summaries. Answers are memoized in Redis under the exact
question text.

Examples:
  # Ask a question
  ask "how do I keep my laptop from overheating?"

  # Bypass the answer cache
  ask --no-cache "how do I keep my laptop from overheating?"`,
	RunE: runAsk,
}

var statsCmd = &cobra.Command{
	Use:   "cache-stats",
	Short: "Show the number of memoized answers",
	RunE:  showCacheStats,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the cache lookup and recompute the answer")

	rootCmd.AddCommand(statsCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func runAsk(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	slog.SetDefault(logger)

	cfg := config.Load()
	components, err := di.NewApplicationComponents(cfg, logger)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}
	defer components.Close()

	question := strings.Join(args, " ")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if noCache {
		// A stored answer would shadow the fresh run, so invalidate it first.
		components.Cache.Delete(ctx, question)
	}

	answer, err := components.AnswerUsecase.Execute(ctx, question)
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	fmt.Println(answer.Text)
	if answer.Cached && verbose {
		fmt.Fprintln(os.Stderr, "(served from cache)")
	}
	return nil
}

func showCacheStats(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg := config.Load()
	components, err := di.NewApplicationComponents(cfg, logger)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}
	defer components.Close()

	size, err := components.Cache.Size(context.Background())
	if err != nil {
		return fmt.Errorf("cache stats: %w", err)
	}

	fmt.Printf("Memoized answers: %d\n", size)
	return nil
}
