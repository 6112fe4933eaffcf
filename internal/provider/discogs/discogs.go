package discogs

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
	"time"

	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

const (
	defaultBaseURL   = "https://api.discogs.com"
	defaultUserAgent = "MetalDetector/1.0 +https://metal-detector.rocks"
	defaultTimeout   = 10 * time.Second
)

// Config holds everything the adapter needs to talk to Discogs. Passing it
// in explicitly keeps the adapter free of process-wide HTTP state and makes
// it testable against a local server.
type Config struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

// Adapter implements provider.Provider for the Discogs database API.
type Adapter struct {
	client    *http.Client
	limiter   *provider.RateLimiterMap
	logger    *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

// New creates a Discogs adapter.
func New(cfg Config, limiter *provider.RateLimiterMap, logger *slog.Logger) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
		logger:    logger.With(slog.String("provider", "discogs")),
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     cfg.Token,
		userAgent: userAgent,
	}
}

// Name returns the provider name.
func (a *Adapter) Name() provider.ProviderName { return provider.NameDiscogs }

// SearchArtistByName searches the Discogs database for artists matching the
// given name. A blank query returns ErrNotFound without any network call.
func (a *Adapter) SearchArtistByName(ctx context.Context, query string, page, size int) (*provider.SearchResultPage, error) {
	if provider.BlankQuery(query) {
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: query}
	}
	if a.token == "" {
		return nil, &provider.ErrAuthRequired{Provider: provider.NameDiscogs}
	}
	if err := a.limiter.Wait(ctx, provider.NameDiscogs); err != nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: query}
	}

	params := url.Values{
		"type":     {"artist"},
		"q":        {query},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(size)},
	}
	reqURL := a.baseURL + "/database/search?" + params.Encode()

	body, err := a.doRequest(ctx, reqURL, query)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		a.logger.Debug("unparseable search response", slog.String("error", err.Error()))
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: query}
	}
	if len(resp.Results) == 0 {
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: query}
	}

	return toSearchPage(&resp), nil
}

// GetArtistByID fetches a single artist by its numeric Discogs ID. A
// non-positive or non-numeric ID returns ErrNotFound without a network call.
func (a *Adapter) GetArtistByID(ctx context.Context, id string) (*provider.ArtistSummary, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: id}
	}
	if a.token == "" {
		return nil, &provider.ErrAuthRequired{Provider: provider.NameDiscogs}
	}
	if err := a.limiter.Wait(ctx, provider.NameDiscogs); err != nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: id}
	}

	reqURL := fmt.Sprintf("%s/artists/%d", a.baseURL, n)
	body, err := a.doRequest(ctx, reqURL, id)
	if err != nil {
		return nil, err
	}

	var detail ArtistDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		a.logger.Debug("unparseable artist response", slog.String("error", err.Error()))
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: id}
	}

	return toArtistSummary(&detail), nil
}

// doRequest performs one authenticated GET. Transport failures and
// non-success statuses fold into ErrNotFound; rejected credentials surface
// as ErrAuthRequired so misconfiguration is not mistaken for a missing artist.
func (a *Adapter) doRequest(ctx context.Context, reqURL, query string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Discogs token="+a.token)
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("requesting", slog.String("url", reqURL))

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Debug("request failed", slog.String("error", err.Error()))
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: query}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &provider.ErrAuthRequired{Provider: provider.NameDiscogs}
	}
	if resp.StatusCode != http.StatusOK {
		a.logger.Debug("non-success status", slog.Int("status", resp.StatusCode))
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: query}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameDiscogs, Query: query}
	}
	return body, nil
}
