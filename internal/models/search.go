package models

// Sort orders for the explore feed
const (
	SortTrending = "trending"
	SortRecent   = "recent"
	SortStars    = "stars"
	SortHearts   = "hearts"
)

// SearchFilters is pure UI-session state describing the current explore query
type SearchFilters struct {
	Query      string   `json:"query"`
	Types      []string `json:"types,omitempty"`
	Models     []string `json:"models,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`
	SortBy     string   `json:"sort_by"`
}

// SearchFiltersPatch is a partial update of SearchFilters; nil fields are
// left untouched by the merge.
type SearchFiltersPatch struct {
	Query      *string   `json:"query,omitempty"`
	Types      *[]string `json:"types,omitempty"`
	Models     *[]string `json:"models,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Categories *[]string `json:"categories,omitempty"`
	SortBy     *string   `json:"sort_by,omitempty"`
}
