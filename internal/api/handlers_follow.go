package api

import (
	"encoding/json"
	"net/http"

	"github.com/MetalDetectorRocks/metal-detector/internal/follow"
	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

func (r *Router) handleListFollows(w http.ResponseWriter, req *http.Request) {
	follows, err := r.follows.List(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if follows == nil {
		follows = []follow.Follow{}
	}
	writeJSON(w, http.StatusOK, follows)
}

func (r *Router) handleCreateFollow(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Source     string `json:"source"`
		ProviderID string `json:"provider_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	source := provider.ProviderName(body.Source)
	if !source.Valid() || body.ProviderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "source and provider_id are required"})
		return
	}

	f, err := r.follows.Follow(req.Context(), source, body.ProviderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (r *Router) handleDeleteFollow(w http.ResponseWriter, req *http.Request) {
	source := provider.ProviderName(req.PathValue("source"))
	if !source.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown source"})
		return
	}

	if err := r.follows.Unfollow(req.Context(), source, req.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
