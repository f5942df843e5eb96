package models

// CommunityStats holds the counters shown on a community header
type CommunityStats struct {
	Subscribers int64 `json:"subscribers"`
	Posts       int64 `json:"posts"`
}

// CommunityDetails holds the administration block of a community
type CommunityDetails struct {
	CreatedDate string `json:"created_date,omitempty"`
	Admin       User   `json:"admin"`
	Moderators  []User `json:"moderators,omitempty"`
}

// Community represents a community (group) as returned by the remote API
type Community struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	AvatarURL   string           `json:"avatar_url"`
	CoverImage  string           `json:"cover_image,omitempty"`
	Description string           `json:"description,omitempty"`
	Stats       CommunityStats   `json:"stats"`
	Details     CommunityDetails `json:"details"`
}
