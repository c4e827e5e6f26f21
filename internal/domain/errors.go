// ABOUTME: Domain-level sentinel errors for the answer-orchestrator service
// ABOUTME: These errors are used with errors.Is() for error type checking
package domain

import "errors"

// Search provider errors
var (
	// ErrSearchUnavailable indicates the search provider returned a
	// non-success status or was unreachable. The orchestrator absorbs this
	// into an empty hit set rather than failing the run.
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrSearchParse indicates the provider response body could not be
	// decoded into the expected shape.
	ErrSearchParse = errors.New("search response not parseable")
)

// LLM backend errors
var (
	// ErrLLMUnavailable indicates the LLM backend was unreachable or
	// returned a non-success status.
	ErrLLMUnavailable = errors.New("llm backend unavailable")

	// ErrSynthesisUnavailable indicates the final synthesis call failed.
	// This is the one pipeline failure that propagates to the caller;
	// nothing is cached for such a run.
	ErrSynthesisUnavailable = errors.New("answer synthesis unavailable")
)

// Cache errors
var (
	// ErrCacheUnavailable indicates the cache store could not be reached.
	// Never fails a run; it only forces the slower cache-miss path.
	ErrCacheUnavailable = errors.New("result cache unavailable")
)

// Validation errors
var (
	// ErrEmptyQuestion indicates the caller submitted a blank question.
	ErrEmptyQuestion = errors.New("question cannot be empty")
)
