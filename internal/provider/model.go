package provider

// ArtistSummary is the provider-agnostic representation of one artist.
// ProviderID and Name are always set; every other field is optional and is
// left at its zero value when the upstream omits it. Optional scalars use
// pointers so that "absent" and "zero" stay distinguishable.
type ArtistSummary struct {
	ProviderID string               `json:"provider_id"`
	Name       string               `json:"name"`
	Images     map[ImageSize]string `json:"images,omitempty"`
	Popularity *int                 `json:"popularity,omitempty"`
	Genres     []string             `json:"genres,omitempty"`
	URI        string               `json:"uri,omitempty"`
	Source     ProviderName         `json:"source"`
}

// Pagination describes the position of a SearchResultPage within the full
// result set. Page is 1-based.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// SearchResultPage is one page of artist search results. Artists preserve
// the provider's rank order and are never reordered.
type SearchResultPage struct {
	Artists    []ArtistSummary `json:"artists"`
	Pagination Pagination      `json:"pagination"`
}

// NewPagination derives a Pagination from a 1-based page, a page size, and a
// total item count, computing TotalPages as ceil(total/perPage).
func NewPagination(page, perPage, totalItems int) Pagination {
	p := Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
	}
	if perPage > 0 {
		p.TotalPages = (totalItems + perPage - 1) / perPage
	}
	return p
}
