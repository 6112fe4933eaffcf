package discogs

// Discogs API response types.

// SearchResponse is the top-level response from the database search endpoint.
type SearchResponse struct {
	Pagination Pagination     `json:"pagination"`
	Results    []SearchResult `json:"results"`
}

// Pagination holds the search endpoint's paging descriptor.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// SearchResult represents a single search hit.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Thumb       string `json:"thumb"`
	URI         string `json:"uri"`
	ResourceURL string `json:"resource_url"`
}

// ArtistDetail is the full artist response.
type ArtistDetail struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Profile     string      `json:"profile"`
	ResourceURL string      `json:"resource_url"`
	URI         string      `json:"uri"`
	URLs        []string    `json:"urls"`
	Images      []Image     `json:"images"`
	Members     []ArtistRef `json:"members"`
}

// ArtistRef is a reference to another artist, e.g. a band member.
type ArtistRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	ResourceURL string `json:"resource_url"`
}

// Image represents a Discogs image.
type Image struct {
	Type        string `json:"type"` // "primary" or "secondary"
	URI         string `json:"uri"`
	ResourceURL string `json:"resource_url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
