package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MetalDetectorRocks/metal-detector/internal/follow"
	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
	"github.com/MetalDetectorRocks/metal-detector/internal/version"
)

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.Commit,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

// writeError maps domain errors to HTTP status codes: not-found conditions
// are 404, misconfigured provider credentials 503, broken upstreams 502.
func writeError(w http.ResponseWriter, err error) {
	var notFound *provider.ErrNotFound
	var authRequired *provider.ErrAuthRequired
	var serviceFailure *provider.ErrServiceFailure

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "artist not found"})
	case errors.Is(err, follow.ErrNotFollowed):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "artist not followed"})
	case errors.Is(err, follow.ErrAlreadyFollowed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "artist already followed"})
	case errors.As(err, &authRequired):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "provider credentials not configured"})
	case errors.As(err, &serviceFailure):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream catalog unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
