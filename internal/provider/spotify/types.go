package spotify

// Spotify Web API response types.

// SearchResponse is the top-level response from the search endpoint.
type SearchResponse struct {
	Artists ArtistPage `json:"artists"`
}

// ArtistPage is Spotify's offset-based paging envelope around artist items.
type ArtistPage struct {
	Href     string   `json:"href"`
	Items    []Artist `json:"items"`
	Limit    int      `json:"limit"`
	Next     string   `json:"next"`
	Offset   int      `json:"offset"`
	Previous string   `json:"previous"`
	Total    int      `json:"total"`
}

// Artist is a single artist object. Popularity is a pointer so a response
// that omits it stays distinguishable from a popularity of zero.
type Artist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Href         string            `json:"href"`
	URI          string            `json:"uri"`
	Popularity   *int              `json:"popularity"`
	Genres       []string          `json:"genres"`
	Images       []Image           `json:"images"`
	ExternalURLs map[string]string `json:"external_urls"`
	Followers    Followers         `json:"followers"`
}

// Image represents a Spotify image rendition.
type Image struct {
	Height int    `json:"height"`
	Width  int    `json:"width"`
	URL    string `json:"url"`
}

// Followers holds the follower count envelope.
type Followers struct {
	Total int `json:"total"`
}
