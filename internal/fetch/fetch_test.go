package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchReturnsBody(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"openapi":"3.0.1"}`))
	}))
	defer server.Close()

	d := New(WithHTTPClient(server.Client()))
	body, err := d.Fetch(server.URL + "/swagger.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"openapi":"3.0.1"}` {
		t.Errorf("unexpected body %q", body)
	}
	if gotAgent != userAgent {
		t.Errorf("expected User-Agent %q, got %q", userAgent, gotAgent)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := New(WithHTTPClient(server.Client()))
	_, err := d.Fetch(server.URL + "/missing.json")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestFetchNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	d := New(WithTimeout(time.Second))
	_, err := d.Fetch(url + "/swagger.json")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestFetchBadURL(t *testing.T) {
	d := New()
	_, err := d.Fetch("://not-a-url")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}
