package sources

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HTTPSource fetches the CSV from a remote URL.
type HTTPSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource creates a source for url using client for the transfer.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	return NewHTTPSourceWithBackoff(client, url, BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	})
}

// NewHTTPSourceWithBackoff is NewHTTPSource with explicit retry settings.
func NewHTTPSourceWithBackoff(client *http.Client, url string, backoff BackoffConfig) *HTTPSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "csv-source",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPSource{
		url: url,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

// Open performs the GET and returns the response body.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
