package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/MetalDetectorRocks/metal-detector/internal/api/middleware"
	"github.com/MetalDetectorRocks/metal-detector/internal/follow"
	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

// Catalog is the aggregation facade surface the API consumes.
type Catalog interface {
	SearchArtistByName(ctx context.Context, source provider.ProviderName, query string, page, size int) (*provider.SearchResultPage, error)
	SearchAll(ctx context.Context, query string, page, size int) (*provider.SearchResultPage, error)
	GetArtist(ctx context.Context, source provider.ProviderName, id string) (*provider.ArtistSummary, error)
}

// FollowService is the follow-list surface the API consumes.
type FollowService interface {
	Follow(ctx context.Context, source provider.ProviderName, providerID string) (*follow.Follow, error)
	Unfollow(ctx context.Context, source provider.ProviderName, providerID string) error
	List(ctx context.Context) ([]follow.Follow, error)
}

// RouterDeps bundles all dependencies needed by the HTTP router.
type RouterDeps struct {
	Catalog  Catalog
	Follows  FollowService
	Logger   *slog.Logger
	BasePath string
}

// Router sets up all HTTP routes for the application.
type Router struct {
	catalog  Catalog
	follows  FollowService
	logger   *slog.Logger
	basePath string
}

// NewRouter creates a new Router with all routes configured.
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		catalog:  deps.Catalog,
		follows:  deps.Follows,
		logger:   deps.Logger,
		basePath: deps.BasePath,
	}
}

// Handler returns the fully configured HTTP handler with middleware applied.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	bp := r.basePath

	mux.HandleFunc("GET "+bp+"/api/v1/health", r.handleHealth)

	mux.HandleFunc("GET "+bp+"/api/v1/artists/search", r.handleSearchArtists)
	mux.HandleFunc("GET "+bp+"/api/v1/artists/{source}/{id}", r.handleGetArtist)

	mux.HandleFunc("GET "+bp+"/api/v1/follows", r.handleListFollows)
	mux.HandleFunc("POST "+bp+"/api/v1/follows", r.handleCreateFollow)
	mux.HandleFunc("DELETE "+bp+"/api/v1/follows/{source}/{id}", r.handleDeleteFollow)

	return middleware.RequestID(middleware.Logging(r.logger)(mux))
}
