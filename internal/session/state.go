package session

import (
	"github.com/radiy-net/radiy-client/internal/models"
)

// View is one of the five mutually exclusive top-level content modes
type View string

// View constants
const (
	ViewFeed    View = "feed"
	ViewGroup   View = "group"
	ViewProfile View = "profile"
	ViewChats   View = "chats"
	ViewSearch  View = "search"
)

// Valid reports whether v is a known view
func (v View) Valid() bool {
	switch v {
	case ViewFeed, ViewGroup, ViewProfile, ViewChats, ViewSearch:
		return true
	}
	return false
}

// State is the view state owned by the controller. The shell only ever sees
// snapshots of it; ActiveEntityID is meaningful for group and profile views,
// SearchQuery for the search view. At most one of ActiveProfile/ActiveGroup
// is non-nil, and only in their respective views.
type State struct {
	Authenticated  bool               `json:"authenticated"`
	CurrentUser    *models.User       `json:"current_user,omitempty"`
	View           View               `json:"view"`
	ActiveEntityID string             `json:"active_entity_id,omitempty"`
	SearchQuery    string             `json:"search_query,omitempty"`
	Loading        bool               `json:"loading"`
	ChatOpen       bool               `json:"chat_open"`
	Posts          []models.Post      `json:"posts"`
	ActiveProfile  *models.User       `json:"active_profile,omitempty"`
	ActiveGroup    *models.Community  `json:"active_group,omitempty"`
	Groups         []models.Community `json:"groups,omitempty"`
	Recent         []models.User      `json:"recent_contacts,omitempty"`
	LastError      string             `json:"last_error,omitempty"`
}

// clone returns a copy safe to hand out while the controller keeps mutating
// its own state. Post values are copied, including the reaction pointer.
func (s State) clone() State {
	out := s

	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	if s.ActiveProfile != nil {
		u := *s.ActiveProfile
		out.ActiveProfile = &u
	}
	if s.ActiveGroup != nil {
		g := *s.ActiveGroup
		out.ActiveGroup = &g
	}

	if s.Posts != nil {
		out.Posts = make([]models.Post, len(s.Posts))
		copy(out.Posts, s.Posts)
		for i := range out.Posts {
			out.Posts[i].SetReaction(s.Posts[i].Reaction())
		}
	}
	if s.Groups != nil {
		out.Groups = append([]models.Community(nil), s.Groups...)
	}
	if s.Recent != nil {
		out.Recent = append([]models.User(nil), s.Recent...)
	}

	return out
}
