package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	defaultAuthURL = "https://accounts.spotify.com/api/token"
	defaultTimeout = 10 * time.Second
)

// Config holds everything the adapter needs to talk to Spotify. The auth URL
// is configurable so tests can point the token grant at a local server.
type Config struct {
	BaseURL      string
	AuthURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Adapter implements provider.Provider for the Spotify Web API. It owns the
// app token for the client-credentials grant: the token is acquired lazily,
// refreshed when expired, and never leaves the adapter.
type Adapter struct {
	client  *http.Client
	limiter *provider.RateLimiterMap
	logger  *slog.Logger
	baseURL string
	auth    clientcredentials.Config

	mu    sync.Mutex
	token *oauth2.Token
}

// New creates a Spotify adapter.
func New(cfg Config, limiter *provider.RateLimiterMap, logger *slog.Logger) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
		logger:  logger.With(slog.String("provider", "spotify")),
		baseURL: strings.TrimRight(baseURL, "/"),
		auth: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     authURL,
		},
	}
}

// Name returns the provider name.
func (a *Adapter) Name() provider.ProviderName { return provider.NameSpotify }

// SearchArtistByName searches Spotify for artists matching the given name.
// A blank query returns ErrNotFound without any network call.
func (a *Adapter) SearchArtistByName(ctx context.Context, query string, page, size int) (*provider.SearchResultPage, error) {
	if provider.BlankQuery(query) {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: query}
	}
	if err := a.limiter.Wait(ctx, provider.NameSpotify); err != nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: query}
	}

	if page < 1 {
		page = 1
	}
	params := url.Values{
		"q":      {query},
		"type":   {"artist"},
		"limit":  {strconv.Itoa(size)},
		"offset": {strconv.Itoa((page - 1) * size)},
	}
	reqURL := a.baseURL + "/search?" + params.Encode()

	body, err := a.doRequest(ctx, reqURL, query)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		a.logger.Debug("unparseable search response", slog.String("error", err.Error()))
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: query}
	}
	if len(resp.Artists.Items) == 0 {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: query}
	}

	return toSearchPage(&resp), nil
}

// GetArtistByID fetches a single artist by its Spotify ID. A blank ID
// returns ErrNotFound without a network call.
func (a *Adapter) GetArtistByID(ctx context.Context, id string) (*provider.ArtistSummary, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: id}
	}
	if err := a.limiter.Wait(ctx, provider.NameSpotify); err != nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: id}
	}

	reqURL := a.baseURL + "/artists/" + url.PathEscape(id)
	body, err := a.doRequest(ctx, reqURL, id)
	if err != nil {
		return nil, err
	}

	var artist Artist
	if err := json.Unmarshal(body, &artist); err != nil {
		a.logger.Debug("unparseable artist response", slog.String("error", err.Error()))
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: id}
	}

	return toArtistSummary(&artist), nil
}

// bearerToken returns a valid app token, performing the client-credentials
// grant when the cached token is absent or expired. The mutex serializes
// refreshes; a failed grant is an upstream failure, not a missing artist.
func (a *Adapter) bearerToken(ctx context.Context) (string, error) {
	if a.auth.ClientID == "" || a.auth.ClientSecret == "" {
		return "", &provider.ErrAuthRequired{Provider: provider.NameSpotify}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token.Valid() {
		return a.token.AccessToken, nil
	}

	a.logger.Debug("requesting app token")
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)
	token, err := a.auth.Token(ctx)
	if err != nil {
		return "", &provider.ErrServiceFailure{
			Provider: provider.NameSpotify,
			Detail:   "token grant failed",
			Cause:    err,
		}
	}
	a.token = token
	return token.AccessToken, nil
}

// clearToken drops the cached token so the next call re-authenticates.
func (a *Adapter) clearToken() {
	a.mu.Lock()
	a.token = nil
	a.mu.Unlock()
}

// doRequest performs one bearer-authenticated GET. Transport failures and
// non-success statuses fold into ErrNotFound; a rejected token is dropped
// from the cache and surfaces as ErrAuthRequired.
func (a *Adapter) doRequest(ctx context.Context, reqURL, query string) ([]byte, error) {
	token, err := a.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("requesting", slog.String("url", reqURL))

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Debug("request failed", slog.String("error", err.Error()))
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: query}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		a.clearToken()
		return nil, &provider.ErrAuthRequired{Provider: provider.NameSpotify}
	}
	if resp.StatusCode != http.StatusOK {
		a.logger.Debug("non-success status", slog.Int("status", resp.StatusCode))
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: query}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, Query: query}
	}
	return body, nil
}
