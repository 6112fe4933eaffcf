package spotify

import (
	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

// toSearchPage maps a raw search response to the shared page shape. Spotify
// pages with limit/offset, so the 1-based page number and page count are
// derived from the envelope; item order is preserved.
func toSearchPage(resp *SearchResponse) *provider.SearchResultPage {
	envelope := resp.Artists

	page := 1
	if envelope.Limit > 0 {
		page = envelope.Offset/envelope.Limit + 1
	}

	result := &provider.SearchResultPage{
		Artists:    make([]provider.ArtistSummary, 0, len(envelope.Items)),
		Pagination: provider.NewPagination(page, envelope.Limit, envelope.Total),
	}
	for i := range envelope.Items {
		result.Artists = append(result.Artists, *toArtistSummary(&envelope.Items[i]))
	}
	return result
}

// toArtistSummary maps a raw artist object to the shared artist shape.
// Optional fields that Spotify omits stay absent: no zero popularity, no
// empty genre list, no placeholder images. When two images classify into the
// same size bucket, the first one in Spotify's order wins.
func toArtistSummary(a *Artist) *provider.ArtistSummary {
	summary := &provider.ArtistSummary{
		ProviderID: a.ID,
		Name:       a.Name,
		URI:        a.ExternalURLs["spotify"],
		Source:     provider.NameSpotify,
	}
	if summary.URI == "" {
		summary.URI = a.URI
	}

	if a.Popularity != nil {
		popularity := *a.Popularity
		summary.Popularity = &popularity
	}

	if len(a.Genres) > 0 {
		summary.Genres = append([]string(nil), a.Genres...)
	}

	for _, img := range a.Images {
		if img.URL == "" {
			continue
		}
		bucket := provider.ClassifyImageHeight(img.Height)
		if summary.Images == nil {
			summary.Images = make(map[provider.ImageSize]string)
		}
		if _, taken := summary.Images[bucket]; taken {
			continue
		}
		summary.Images[bucket] = img.URL
	}

	return summary
}
