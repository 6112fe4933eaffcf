package api

import (
	"net/http"
	"strconv"

	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

func (r *Router) handleSearchArtists(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	query := q.Get("query")
	page := intParam(q.Get("page"), 1)
	size := intParam(q.Get("page_size"), 0)

	source := provider.ProviderName(q.Get("source"))
	if source != "" && !source.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown source"})
		return
	}

	var (
		result *provider.SearchResultPage
		err    error
	)
	if source == "" {
		result, err = r.catalog.SearchAll(req.Context(), query, page, size)
	} else {
		result, err = r.catalog.SearchArtistByName(req.Context(), source, query, page, size)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (r *Router) handleGetArtist(w http.ResponseWriter, req *http.Request) {
	source := provider.ProviderName(req.PathValue("source"))
	if !source.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown source"})
		return
	}

	summary, err := r.catalog.GetArtist(req.Context(), source, req.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// intParam parses a positive integer query parameter, falling back when the
// value is missing or malformed.
func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
