package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads documents over HTTP.
type Fetcher interface {
	// FetchText returns the body of url as a string.
	FetchText(ctx context.Context, url string) (string, error)
	// FetchPage requests url as JSON with generated image alt text, the
	// format the scraping proxy answers with.
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

type HTTPFetcher struct {
	httpClient *resty.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: resty.New().
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(time.Second),
	}
}

func (f *HTTPFetcher) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := f.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}

func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.httpClient.R().
		SetContext(ctx).
		SetHeader("X-With-Generated-Alt", "true").
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}
