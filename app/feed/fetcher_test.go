package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetcher_Run(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte("<rss></rss>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Test Agent", time.Second)
	data, err := fetcher.Run(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != "<rss></rss>" {
		t.Errorf("Expected body '<rss></rss>', got: %s", string(data))
	}
	if gotUserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got: %s", gotUserAgent)
	}
}

func TestFetcher_Defaults(t *testing.T) {
	fetcher := NewFetcher(nil, "", 0)

	if fetcher.userAgent != DefaultUserAgent {
		t.Errorf("Expected default user agent, got: %s", fetcher.userAgent)
	}
	if fetcher.timeout != DefaultTimeout {
		t.Errorf("Expected default timeout, got: %s", fetcher.timeout)
	}
	if fetcher.httpClient == nil {
		t.Error("Expected a default HTTP client")
	}
}

func TestFetcher_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewFetcher(server.Client(), "", time.Second).Run(context.Background(), server.URL)

	if err == nil {
		t.Fatal("Expected error for HTTP 502")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("Expected status code in error, got: %v", err)
	}
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewFetcher(server.Client(), "", 50*time.Millisecond).Run(context.Background(), server.URL)

	if err == nil {
		t.Fatal("Expected timeout error")
	}
}
