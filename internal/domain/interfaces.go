package domain

import "context"

// SearchClient queries the external search provider.
type SearchClient interface {
	// Search returns the provider's ranked hits for the query.
	// Fails with ErrSearchUnavailable or ErrSearchParse.
	Search(ctx context.Context, query string, count int) ([]SearchHit, error)
}

// LLMClient issues one chat-completion request against the LLM backend.
type LLMClient interface {
	// Chat returns the generated text for the conversation.
	// Fails with ErrLLMUnavailable when the backend is unreachable or
	// returns a non-success status.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// LookupResult distinguishes a cache miss from a cache outage so callers can
// keep the tolerant fallback behavior without losing observability.
type LookupResult int

const (
	LookupHit LookupResult = iota
	LookupMiss
	LookupUnavailable
)

func (r LookupResult) String() string {
	switch r {
	case LookupHit:
		return "hit"
	case LookupMiss:
		return "miss"
	default:
		return "unavailable"
	}
}

// ResultCache memoizes final answers keyed by the verbatim question text.
// Two differently-phrased-but-equivalent questions are distinct entries;
// that is a documented limitation of the key scheme, not a bug.
type ResultCache interface {
	// Lookup returns the cached answer text for the key. An unreachable
	// store reports LookupUnavailable, which callers treat as a miss.
	Lookup(ctx context.Context, key string) (string, LookupResult)

	// Store persists the answer text under the key. Fire-and-forget:
	// failures are logged by the implementation, never returned.
	Store(ctx context.Context, key, value string)

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) bool

	// Size returns the number of entries in the backing store.
	Size(ctx context.Context) (int64, error)
}
