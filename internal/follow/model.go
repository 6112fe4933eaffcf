package follow

import (
	"time"

	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

// Follow records that a user follows one artist from one catalog provider.
// The (Source, ProviderID) pair is unique; identifiers are provider-scoped
// and never compared across providers.
type Follow struct {
	ID         string                `json:"id"`
	Source     provider.ProviderName `json:"source"`
	ProviderID string                `json:"provider_id"`
	ArtistName string                `json:"artist_name"`
	ArtistURI  string                `json:"artist_uri,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}
