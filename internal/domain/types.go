package domain

// SearchHit is one entry from the search provider's result set. Provider
// ordering is preserved but carries no meaning downstream.
type SearchHit struct {
	ID      string
	Title   string
	URL     string
	Snippet string
}

// FetchStatus is the terminal state of a page retrieval attempt.
type FetchStatus int

const (
	Fetched FetchStatus = iota
	FetchFailed
)

func (s FetchStatus) String() string {
	if s == Fetched {
		return "fetched"
	}
	return "fetch_failed"
}

// MediaType classifies the payload of a fetched page so the converter can
// route it to the right extractor.
type MediaType int

const (
	MediaHTML MediaType = iota
	MediaPDF
	MediaPlain
)

// PageDocument is the result of retrieving one SearchHit. It is assigned a
// terminal status exactly once and never re-fetched within a run.
type PageDocument struct {
	URL       string
	Status    FetchStatus
	MediaType MediaType
	// Content is the converted text, empty when Status is FetchFailed.
	Content string
}

// SummaryStatus is the terminal state of a per-page relevance call.
type SummaryStatus int

const (
	Summarized SummaryStatus = iota
	SummarizeFailed
)

func (s SummaryStatus) String() string {
	if s == Summarized {
		return "summarized"
	}
	return "summarize_failed"
}

// RelevanceSummary is the page-specific extract of how a fetched page answers
// the question. Immutable after creation.
type RelevanceSummary struct {
	URL    string
	Status SummaryStatus
	Text   string
}

// Answer is the single synthesized output of one pipeline run.
type Answer struct {
	Text string
	// Cached reports whether the answer was served from the result cache.
	Cached bool
}

// Message is one chat turn sent to the LLM backend.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)
