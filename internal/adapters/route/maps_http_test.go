package route

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestDoWithRetryRecoversFromTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"status": "OK"}`)
	}))
	defer srv.Close()

	p, err := NewGoogleRouteProvider("test-key", nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := p.doWithRetry(context.Background(), func() (*http.Request, error) {
		return p.newRequest(context.Background(), srv.URL)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if got := calls.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestDoWithRetryGivesUpOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p, err := NewGoogleRouteProvider("test-key", nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, err = p.doWithRetry(context.Background(), func() (*http.Request, error) {
		return p.newRequest(context.Background(), srv.URL)
	})

	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("error = %v, want 403 status error", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1 (403 is not retryable)", got)
	}
}

func TestDoWithRetryHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p, err := NewGoogleRouteProvider("test-key", nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, srv.URL)
	}); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
