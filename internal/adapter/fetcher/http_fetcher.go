// Package fetcher downloads exam documents over HTTP.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"exam-ingest/internal/config"
	"exam-ingest/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// HTTPFetcher implements domain.DocumentFetcher. Concurrent requests for the same URL share
// one download.
type HTTPFetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
	logger    *zap.Logger
	group     singleflight.Group
}

var _ domain.DocumentFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with the configured timeout, size limit and User-Agent.
func NewHTTPFetcher(cfg config.FetchConfig, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Fetch downloads url. Network failures, non-2xx statuses and oversized bodies are reported
// as FETCH_ERROR. The shared download is detached from any single caller's cancellation and
// bounded by the client timeout; a caller whose ctx ends stops waiting without affecting the
// others.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	ch := f.group.DoChan(url, func() (interface{}, error) {
		return f.download(context.WithoutCancel(ctx), url)
	})

	select {
	case <-ctx.Done():
		return nil, domain.NewFetchError(url, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			f.logger.Debug("Download shared with a concurrent request", zap.String("url", url))
		}
		return res.Val.([]byte), nil
	}
}

func (f *HTTPFetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "application/pdf, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewFetchError(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, domain.NewFetchError(url, fmt.Errorf("document exceeds %d bytes", f.maxBytes))
	}

	f.logger.Info("Document downloaded", zap.String("url", url), zap.Int("bytes", len(data)))
	return data, nil
}
