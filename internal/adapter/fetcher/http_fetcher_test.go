package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"exam-ingest/internal/config"
	"exam-ingest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFetcher(maxBytes int64) *HTTPFetcher {
	return NewHTTPFetcher(config.FetchConfig{
		Timeout:   5 * time.Second,
		MaxBytes:  maxBytes,
		UserAgent: "exam-ingest-test",
	}, zap.NewNop())
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	defer server.Close()

	data, err := newTestFetcher(1024).Fetch(context.Background(), server.URL+"/prova.pdf")

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(data))
	assert.Equal(t, "exam-ingest-test", gotUA)
}

func TestHTTPFetcher_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.pdf":
			http.NotFound(w, r)
		case "/large.pdf":
			_, _ = w.Write(make([]byte, 2048))
		default:
			_, _ = w.Write([]byte("ok"))
		}
	}))
	defer server.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"non-2xx status", server.URL + "/missing.pdf"},
		{"body over the limit", server.URL + "/large.pdf"},
		{"unreachable host", "http://127.0.0.1:1/prova.pdf"},
		{"malformed url", "://bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := newTestFetcher(1024).Fetch(context.Background(), tt.url)
			require.Error(t, err)
			assert.Nil(t, data)
			assert.Equal(t, domain.ErrFetch, domain.CodeOf(err))
		})
	}
}

func TestHTTPFetcher_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(1024).Fetch(ctx, server.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher_SharedDownloadSurvivesCallerCancel(t *testing.T) {
	var hits int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			close(arrived)
		}
		<-release
		_, _ = w.Write([]byte("%PDF-1.4 shared"))
	}))
	defer server.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	f := newTestFetcher(1024)
	url := server.URL + "/prova.pdf"

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := f.Fetch(firstCtx, url)
		firstErr <- err
	}()
	<-arrived

	type result struct {
		data []byte
		err  error
	}
	second := make(chan result, 1)
	go func() {
		data, err := f.Fetch(context.Background(), url)
		second <- result{data, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	err := <-firstErr
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "%PDF-1.4 shared", string(got.data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
