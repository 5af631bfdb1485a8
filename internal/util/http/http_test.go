package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, UserAgentName+"/") {
			t.Errorf("unexpected User-Agent %q", ua)
		}
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("expected X-Test header, got %q", got)
		}
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), server.URL, FetchOptions{
		Headers: map[string]string{"X-Test": "yes"},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("got %q, want %q", data, "payload")
	}
}

func TestFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, FetchOptions{})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 error, got %v", err)
	}
}

func TestFetchBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, FetchOptions{MaxBytes: 16})
	if err == nil {
		t.Error("expected error for oversized body")
	}
}
