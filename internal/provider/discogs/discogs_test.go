package discogs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", name, err)
	}
	return data
}

func newTestServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		if r.Header.Get("Authorization") != "Discogs token=test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("User-Agent") != "test-agent/1.0" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/database/search"):
			w.Write(loadFixture(t, "search_metallica.json"))
		case strings.HasPrefix(r.URL.Path, "/artists/"):
			w.Write(loadFixture(t, "artist_metallica.json"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newAdapter(baseURL string) *Adapter {
	return New(Config{
		BaseURL:   baseURL,
		Token:     "test-token",
		UserAgent: "test-agent/1.0",
	}, provider.NewRateLimiterMap(), testLogger())
}

func TestSearchArtistByName(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()
	a := newAdapter(srv.URL)

	result, err := a.SearchArtistByName(context.Background(), "Metallica", 1, 25)
	if err != nil {
		t.Fatalf("SearchArtistByName: %v", err)
	}
	if len(result.Artists) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Artists))
	}
	if result.Artists[0].Name != "Metallica" || result.Artists[0].ProviderID != "18839" {
		t.Errorf("unexpected first result: %+v", result.Artists[0])
	}
	// Pagination fields come straight from the provider
	p := result.Pagination
	if p.Page != 1 || p.PerPage != 25 || p.TotalItems != 312 || p.TotalPages != 13 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}

func TestSearchBlankQueryNoNetwork(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(t, &requests)
	defer srv.Close()
	a := newAdapter(srv.URL)

	for _, query := range []string{"", "   "} {
		_, err := a.SearchArtistByName(context.Background(), query, 1, 25)
		if !provider.IsNotFound(err) {
			t.Errorf("query %q: expected not-found, got %v", query, err)
		}
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
}

func TestGetArtistInvalidIDNoNetwork(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(t, &requests)
	defer srv.Close()
	a := newAdapter(srv.URL)

	for _, id := range []string{"0", "-1", "abc", ""} {
		_, err := a.GetArtistByID(context.Background(), id)
		if !provider.IsNotFound(err) {
			t.Errorf("id %q: expected not-found, got %v", id, err)
		}
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
}

func TestGetArtistByID(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()
	a := newAdapter(srv.URL)

	summary, err := a.GetArtistByID(context.Background(), "18839")
	if err != nil {
		t.Fatalf("GetArtistByID: %v", err)
	}
	if summary.Name != "Metallica" || summary.ProviderID != "18839" {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.URI != "https://www.discogs.com/artist/18839-Metallica" {
		t.Errorf("unexpected URI %q", summary.URI)
	}
	if summary.Popularity != nil {
		t.Error("Discogs reports no popularity, expected absent")
	}
	if summary.Genres != nil {
		t.Error("Discogs reports no genres, expected absent")
	}
}

func TestEmptyResultsAreNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pagination":{"page":1,"pages":0,"per_page":25,"items":0},"results":[]}`))
	}))
	defer srv.Close()
	a := newAdapter(srv.URL)

	_, err := a.SearchArtistByName(context.Background(), "Unknowable", 1, 25)
	if !provider.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestServerErrorFoldsToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	a := newAdapter(srv.URL)

	_, err := a.SearchArtistByName(context.Background(), "Metallica", 1, 25)
	if !provider.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestMalformedBodyFoldsToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pagination":`))
	}))
	defer srv.Close()
	a := newAdapter(srv.URL)

	_, err := a.SearchArtistByName(context.Background(), "Metallica", 1, 25)
	if !provider.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRejectedTokenIsAuthRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	a := newAdapter(srv.URL)

	_, err := a.SearchArtistByName(context.Background(), "Metallica", 1, 25)
	var authErr *provider.ErrAuthRequired
	if !errors.As(err, &authErr) {
		t.Fatalf("expected auth-required, got %v", err)
	}
}

func TestMissingTokenNoNetwork(t *testing.T) {
	var requests atomic.Int32
	srv := newTestServer(t, &requests)
	defer srv.Close()
	a := New(Config{BaseURL: srv.URL}, provider.NewRateLimiterMap(), testLogger())

	_, err := a.SearchArtistByName(context.Background(), "Metallica", 1, 25)
	var authErr *provider.ErrAuthRequired
	if !errors.As(err, &authErr) {
		t.Fatalf("expected auth-required, got %v", err)
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
}
