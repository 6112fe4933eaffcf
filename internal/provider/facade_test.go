package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type fakeProvider struct {
	name        ProviderName
	searchCalls int
	getCalls    int
	lastPage    int
	lastSize    int
	searchFn    func(query string, page, size int) (*SearchResultPage, error)
	getFn       func(id string) (*ArtistSummary, error)
}

func (f *fakeProvider) Name() ProviderName { return f.name }

func (f *fakeProvider) SearchArtistByName(_ context.Context, query string, page, size int) (*SearchResultPage, error) {
	f.searchCalls++
	f.lastPage = page
	f.lastSize = size
	if f.searchFn != nil {
		return f.searchFn(query, page, size)
	}
	return nil, &ErrNotFound{Provider: f.name, Query: query}
}

func (f *fakeProvider) GetArtistByID(_ context.Context, id string) (*ArtistSummary, error) {
	f.getCalls++
	if f.getFn != nil {
		return f.getFn(id)
	}
	return nil, &ErrNotFound{Provider: f.name, Query: id}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pageOf(name ProviderName, total int, ids ...string) *SearchResultPage {
	page := &SearchResultPage{Pagination: NewPagination(1, 25, total)}
	for _, id := range ids {
		page.Artists = append(page.Artists, ArtistSummary{ProviderID: id, Name: "artist " + id, Source: name})
	}
	return page
}

func TestFacadeSearchUnregisteredProvider(t *testing.T) {
	f := NewFacade(NewRegistry(), testLogger())

	if _, err := f.SearchArtistByName(context.Background(), NameDiscogs, "Metallica", 1, 25); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
	if _, err := f.GetArtist(context.Background(), NameSpotify, "123"); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}

func TestFacadeSearchAbsenceSurfacesAsNotFound(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeProvider{name: NameDiscogs})
	f := NewFacade(registry, testLogger())

	_, err := f.SearchArtistByName(context.Background(), NameDiscogs, "Unknowable", 1, 25)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestFacadeClampsPaging(t *testing.T) {
	p := &fakeProvider{name: NameDiscogs, searchFn: func(q string, page, size int) (*SearchResultPage, error) {
		return pageOf(NameDiscogs, 1, "1"), nil
	}}
	registry := NewRegistry()
	registry.Register(p)
	f := NewFacade(registry, testLogger())

	if _, err := f.SearchArtistByName(context.Background(), NameDiscogs, "Metallica", -3, 0); err != nil {
		t.Fatalf("SearchArtistByName: %v", err)
	}
	if p.lastPage != 1 {
		t.Errorf("expected page clamped to 1, got %d", p.lastPage)
	}
	if p.lastSize != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, p.lastSize)
	}

	if _, err := f.SearchArtistByName(context.Background(), NameDiscogs, "Metallica", 2, 9999); err != nil {
		t.Fatalf("SearchArtistByName: %v", err)
	}
	if p.lastSize != MaxPageSize {
		t.Errorf("expected page size clamped to %d, got %d", MaxPageSize, p.lastSize)
	}
}

func TestFacadeSearchAllMergesInRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeProvider{name: NameDiscogs, searchFn: func(q string, page, size int) (*SearchResultPage, error) {
		return pageOf(NameDiscogs, 2, "d1", "d2"), nil
	}})
	registry.Register(&fakeProvider{name: NameSpotify, searchFn: func(q string, page, size int) (*SearchResultPage, error) {
		return pageOf(NameSpotify, 1, "s1"), nil
	}})
	f := NewFacade(registry, testLogger())

	result, err := f.SearchAll(context.Background(), "Metallica", 1, 25)
	if err != nil {
		t.Fatalf("SearchAll: %v", err)
	}

	var gotIDs []string
	for _, a := range result.Artists {
		gotIDs = append(gotIDs, a.ProviderID)
	}
	want := []string{"d1", "d2", "s1"}
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(gotIDs))
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, gotIDs[i], want[i])
		}
	}

	if result.Pagination.TotalItems != 3 {
		t.Errorf("expected 3 total items, got %d", result.Pagination.TotalItems)
	}
	if result.Pagination.TotalPages != 1 {
		t.Errorf("expected 1 total page, got %d", result.Pagination.TotalPages)
	}
}

func TestFacadeSearchAllSkipsFailingProvider(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeProvider{name: NameDiscogs, searchFn: func(q string, page, size int) (*SearchResultPage, error) {
		return nil, &ErrServiceFailure{Provider: NameDiscogs, Detail: "boom", Cause: errors.New("boom")}
	}})
	registry.Register(&fakeProvider{name: NameSpotify, searchFn: func(q string, page, size int) (*SearchResultPage, error) {
		return pageOf(NameSpotify, 1, "s1"), nil
	}})
	f := NewFacade(registry, testLogger())

	result, err := f.SearchAll(context.Background(), "Metallica", 1, 25)
	if err != nil {
		t.Fatalf("SearchAll: %v", err)
	}
	if len(result.Artists) != 1 || result.Artists[0].ProviderID != "s1" {
		t.Errorf("expected the healthy provider's result, got %+v", result.Artists)
	}
}

func TestFacadeSearchAllAllAbsentIsNotFound(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeProvider{name: NameDiscogs})
	registry.Register(&fakeProvider{name: NameSpotify})
	f := NewFacade(registry, testLogger())

	_, err := f.SearchAll(context.Background(), "Unknowable", 1, 25)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
