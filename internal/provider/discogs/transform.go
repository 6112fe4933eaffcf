package discogs

import (
	"strconv"

	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

// Discogs serves search thumbnails at a fixed 150px edge and omits the
// dimensions from the search payload.
const thumbHeight = 150

// toSearchPage maps a raw search response to the shared page shape. The
// provider's pagination fields are copied verbatim and the result order is
// preserved. Discogs reports neither popularity nor genres, so those fields
// stay absent.
func toSearchPage(resp *SearchResponse) *provider.SearchResultPage {
	page := &provider.SearchResultPage{
		Artists: make([]provider.ArtistSummary, 0, len(resp.Results)),
		Pagination: provider.Pagination{
			Page:       resp.Pagination.Page,
			PerPage:    resp.Pagination.PerPage,
			TotalItems: resp.Pagination.Items,
			TotalPages: resp.Pagination.Pages,
		},
	}

	for _, r := range resp.Results {
		entry := provider.ArtistSummary{
			ProviderID: strconv.Itoa(r.ID),
			Name:       r.Title,
			URI:        r.ResourceURL,
			Source:     provider.NameDiscogs,
		}
		if r.Thumb != "" {
			entry.Images = map[provider.ImageSize]string{
				provider.ClassifyImageHeight(thumbHeight): r.Thumb,
			}
		}
		page.Artists = append(page.Artists, entry)
	}

	return page
}

// toArtistSummary maps a raw artist detail to the shared artist shape.
// Images are bucketed by height; when two images land in the same bucket the
// first one in Discogs order wins.
func toArtistSummary(d *ArtistDetail) *provider.ArtistSummary {
	summary := &provider.ArtistSummary{
		ProviderID: strconv.Itoa(d.ID),
		Name:       d.Name,
		URI:        d.URI,
		Source:     provider.NameDiscogs,
	}
	if summary.URI == "" {
		summary.URI = d.ResourceURL
	}

	for _, img := range d.Images {
		if img.URI == "" {
			continue
		}
		bucket := provider.ClassifyImageHeight(img.Height)
		if summary.Images == nil {
			summary.Images = make(map[provider.ImageSize]string)
		}
		if _, taken := summary.Images[bucket]; taken {
			continue
		}
		summary.Images[bucket] = img.URI
	}

	return summary
}
