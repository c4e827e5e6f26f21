package httpclient

import (
	"net/http"
	"time"
)

// sharedTransport is reused across all pooled clients so that page fetches,
// search calls, and LLM calls draw from one connection pool instead of each
// component opening its own sockets.
var sharedTransport = &http.Transport{
	MaxIdleConns:        40,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client that shares the process-wide
// connection pool. The timeout is an absolute per-request bound; callers that
// need finer control pass request contexts as well.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
