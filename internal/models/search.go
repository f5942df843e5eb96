package models

// Search result type constants
const (
	SearchTypeUser      = "user"
	SearchTypeCommunity = "community"
)

// SearchResult represents a single entry of a search response. EntityID, when
// present, is the id the shell navigates to on selection.
type SearchResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Image    string `json:"image,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
}
