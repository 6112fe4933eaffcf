package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Page size bounds applied before delegating to any adapter. Spotify caps
// search pages at 50 items; Discogs accepts more but is rate-limited hard
// enough that larger pages buy nothing.
const (
	DefaultPageSize = 25
	MaxPageSize     = 50
)

// Facade is the single entry point the rest of the application uses to query
// external catalogs. It owns no mutable state; every call is an independent
// request/response round trip against the registered adapters.
type Facade struct {
	registry *Registry
	logger   *slog.Logger
}

// NewFacade creates a Facade over the given registry.
func NewFacade(registry *Registry, logger *slog.Logger) *Facade {
	return &Facade{
		registry: registry,
		logger:   logger.With(slog.String("component", "catalog-facade")),
	}
}

// SearchArtistByName searches a single provider's catalog. Absence of a
// usable result surfaces as ErrNotFound, never as an empty page.
func (f *Facade) SearchArtistByName(ctx context.Context, source ProviderName, query string, page, size int) (*SearchResultPage, error) {
	p := f.registry.Get(source)
	if p == nil {
		return nil, fmt.Errorf("provider %s not registered", source)
	}

	page, size = clampPaging(page, size)
	result, err := p.SearchArtistByName(ctx, query, page, size)
	if err != nil {
		f.logSearchFailure(source, query, err)
		return nil, err
	}
	return result, nil
}

// SearchAll searches every registered provider and merges the pages in
// registration order, preserving each provider's rank order within its slice.
// Providers that fail are skipped; if none returns a usable result the merged
// search is a not-found.
func (f *Facade) SearchAll(ctx context.Context, query string, page, size int) (*SearchResultPage, error) {
	page, size = clampPaging(page, size)

	merged := &SearchResultPage{}
	totalItems := 0
	for _, p := range f.registry.All() {
		result, err := p.SearchArtistByName(ctx, query, page, size)
		if err != nil {
			f.logSearchFailure(p.Name(), query, err)
			continue
		}
		merged.Artists = append(merged.Artists, result.Artists...)
		totalItems += result.Pagination.TotalItems
	}

	if len(merged.Artists) == 0 {
		return nil, &ErrNotFound{Query: query}
	}

	merged.Pagination = NewPagination(page, size, totalItems)
	return merged, nil
}

// GetArtist looks up a single artist by provider and provider-scoped ID.
func (f *Facade) GetArtist(ctx context.Context, source ProviderName, id string) (*ArtistSummary, error) {
	p := f.registry.Get(source)
	if p == nil {
		return nil, fmt.Errorf("provider %s not registered", source)
	}
	return p.GetArtistByID(ctx, id)
}

func (f *Facade) logSearchFailure(source ProviderName, query string, err error) {
	if IsNotFound(err) {
		f.logger.Debug("provider returned no result",
			slog.String("provider", string(source)),
			slog.String("query", query))
		return
	}
	f.logger.Warn("provider search failed",
		slog.String("provider", string(source)),
		slog.String("error", err.Error()))
}

// clampPaging normalizes caller-supplied paging: page is at least 1, size is
// bounded to [1, MaxPageSize] with a default when unset.
func clampPaging(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// BlankQuery reports whether a search query is empty or whitespace-only.
// Adapters use it to short-circuit before any network I/O.
func BlankQuery(q string) bool {
	return strings.TrimSpace(q) == ""
}
