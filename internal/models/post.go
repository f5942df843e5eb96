package models

import (
	"sort"
	"time"
)

// ReactionKind is the caller's vote on a post. At most one of like/dislike
// is active for a given post at any time.
type ReactionKind string

// Reaction kind constants
const (
	ReactionNone    ReactionKind = "none"
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid reports whether k is one of the three known kinds.
func (k ReactionKind) Valid() bool {
	return k == ReactionNone || k == ReactionLike || k == ReactionDislike
}

// Post represents a post as returned by the remote API
type Post struct {
	ID          string        `json:"id"`
	Author      User          `json:"author"`
	Text        string        `json:"text"`
	Image       string        `json:"image,omitempty"`
	Likes       int64         `json:"likes"`
	Dislikes    int64         `json:"dislikes"`
	MyReaction  *ReactionKind `json:"my_reaction,omitempty"`
	CreatedAt   time.Time     `json:"creation_datetime"`
	CommunityID string        `json:"community,omitempty"`
}

// Reaction returns the caller's reaction, mapping an absent value to none.
func (p *Post) Reaction() ReactionKind {
	if p.MyReaction == nil || *p.MyReaction == "" {
		return ReactionNone
	}
	return *p.MyReaction
}

// SetReaction stores the caller's reaction, mapping none back to an absent value.
func (p *Post) SetReaction(k ReactionKind) {
	if k == ReactionNone {
		p.MyReaction = nil
		return
	}
	r := k
	p.MyReaction = &r
}

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"creation_datetime"`
}

// SortPostsDesc orders posts newest first. Every replacement of the displayed
// post list goes through this; a prepend on creation is the only exception.
func SortPostsDesc(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
