// Package reaction implements the like/dislike toggle for a single post: a
// pure transition over a tagged tri-state plus the network call sequence that
// pushes an accepted transition to the API. Callers apply the transition
// optimistically and restore the previous state verbatim when the push fails.
package reaction

import (
	"context"

	"github.com/radiy-net/radiy-client/internal/models"
)

// State is the caller-visible reaction state of one post. Kind carries the
// single active reaction, so "at most one of like/dislike" holds by
// construction rather than by convention.
type State struct {
	Kind     models.ReactionKind
	Likes    int64
	Dislikes int64
}

// FromPost reads the reaction state out of a post snapshot
func FromPost(p *models.Post) State {
	return State{
		Kind:     p.Reaction(),
		Likes:    p.Likes,
		Dislikes: p.Dislikes,
	}
}

// ApplyToPost writes a reaction state back onto a post
func ApplyToPost(p *models.Post, s State) {
	p.SetReaction(s.Kind)
	p.Likes = s.Likes
	p.Dislikes = s.Dislikes
}

// Apply returns the state after requesting the given kind:
//
//   - requesting the active kind toggles it off and decrements its count
//   - requesting the other kind while one is active switches in one step,
//     incrementing the requested count and decrementing the previous one
//   - requesting a kind while none is active turns it on
//
// Counts never go below zero. Requesting none returns the state unchanged.
func Apply(s State, requested models.ReactionKind) State {
	if requested != models.ReactionLike && requested != models.ReactionDislike {
		return s
	}

	next := s
	switch {
	case requested == s.Kind:
		next.Kind = models.ReactionNone
		next.dec(requested)
	case s.Kind == models.ReactionNone:
		next.Kind = requested
		next.inc(requested)
	default:
		next.Kind = requested
		next.inc(requested)
		next.dec(s.Kind)
	}
	return next
}

func (s *State) inc(kind models.ReactionKind) {
	if kind == models.ReactionLike {
		s.Likes++
	} else {
		s.Dislikes++
	}
}

func (s *State) dec(kind models.ReactionKind) {
	if kind == models.ReactionLike {
		if s.Likes > 0 {
			s.Likes--
		}
	} else {
		if s.Dislikes > 0 {
			s.Dislikes--
		}
	}
}

// Sender is the slice of the data source needed to push a reaction
type Sender interface {
	Like(ctx context.Context, postID string) error
	Dislike(ctx context.Context, postID string) error
	RemoveReaction(ctx context.Context, postID string) error
}

// Send issues the network calls for moving a post's reaction from prev to the
// requested kind: the previous reaction is removed first when one existed and
// differed, then the requested one is recorded. Requesting the active kind
// only withdraws it. The first failing call aborts the sequence.
func Send(ctx context.Context, s Sender, postID string, prev, requested models.ReactionKind) error {
	if requested == prev {
		return s.RemoveReaction(ctx, postID)
	}

	if prev != models.ReactionNone {
		if err := s.RemoveReaction(ctx, postID); err != nil {
			return err
		}
	}

	if requested == models.ReactionLike {
		return s.Like(ctx, postID)
	}
	return s.Dislike(ctx, postID)
}
