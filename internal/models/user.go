package models

// UserStats holds the counters shown on a profile header
type UserStats struct {
	Friends   int64 `json:"friends"`
	Followers int64 `json:"followers"`
	Posts     int64 `json:"posts"`
}

// User represents a Radiy account as returned by the remote API.
// The username is the identity key; every fetch returns an immutable snapshot.
type User struct {
	Username    string    `json:"username"`
	VisibleName string    `json:"visible_name"`
	AvatarURL   string    `json:"avatar_url"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Status      string    `json:"status,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Stats       UserStats `json:"stats"`
}

// User status constants
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)
