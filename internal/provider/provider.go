package provider

import (
	"context"
	"errors"
	"fmt"
)

// ProviderName uniquely identifies an external catalog provider.
type ProviderName string

// Known provider names.
const (
	NameDiscogs ProviderName = "discogs"
	NameSpotify ProviderName = "spotify"
)

// AllProviderNames returns all known provider names in display order.
func AllProviderNames() []ProviderName {
	return []ProviderName{NameDiscogs, NameSpotify}
}

// DisplayName returns a human-readable name for the provider.
func (n ProviderName) DisplayName() string {
	switch n {
	case NameDiscogs:
		return "Discogs"
	case NameSpotify:
		return "Spotify"
	default:
		return string(n)
	}
}

// Valid reports whether n is a known provider name.
func (n ProviderName) Valid() bool {
	switch n {
	case NameDiscogs, NameSpotify:
		return true
	}
	return false
}

// Provider is the capability interface every catalog adapter implements.
// Each adapter owns its own transport, credentials, and (where the upstream
// requires one) its authentication token; nothing is shared between adapters.
type Provider interface {
	// Name returns the unique provider identifier.
	Name() ProviderName

	// SearchArtistByName searches the provider's catalog by artist name.
	// A blank query short-circuits to ErrNotFound without network I/O.
	SearchArtistByName(ctx context.Context, query string, page, size int) (*SearchResultPage, error)

	// GetArtistByID fetches a single artist by the provider's own ID.
	// An invalid ID short-circuits to ErrNotFound without network I/O.
	GetArtistByID(ctx context.Context, id string) (*ArtistSummary, error)
}

// ErrNotFound indicates the provider has no usable result for the request:
// an empty result set, a non-success status, or a query that was invalid on
// its face. Callers treat it as "no such artist".
type ErrNotFound struct {
	Provider ProviderName
	Query    string
}

func (e *ErrNotFound) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("no catalog result for %q", e.Query)
	}
	return fmt.Sprintf("provider %s: no result for %q", e.Provider, e.Query)
}

// ErrServiceFailure indicates the upstream is broken rather than empty,
// e.g. a failed token grant or a response that fails an integrity check.
type ErrServiceFailure struct {
	Provider ProviderName
	Detail   string
	Cause    error
}

func (e *ErrServiceFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Detail, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Detail)
}

func (e *ErrServiceFailure) Unwrap() error { return e.Cause }

// ErrAuthRequired indicates the provider needs credentials but none are
// configured, or the configured credentials were rejected.
type ErrAuthRequired struct {
	Provider ProviderName
}

func (e *ErrAuthRequired) Error() string {
	return fmt.Sprintf("provider %s: credentials not configured or rejected", e.Provider)
}

// IsNotFound reports whether err is a provider not-found condition.
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}
