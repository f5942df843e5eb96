package reaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiy-net/radiy-client/internal/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		requested models.ReactionKind
		expected  State
	}{
		{
			name:      "turn like on",
			state:     State{Kind: models.ReactionNone, Likes: 5, Dislikes: 1},
			requested: models.ReactionLike,
			expected:  State{Kind: models.ReactionLike, Likes: 6, Dislikes: 1},
		},
		{
			name:      "turn dislike on",
			state:     State{Kind: models.ReactionNone, Likes: 0, Dislikes: 0},
			requested: models.ReactionDislike,
			expected:  State{Kind: models.ReactionDislike, Likes: 0, Dislikes: 1},
		},
		{
			name:      "toggle like off",
			state:     State{Kind: models.ReactionLike, Likes: 6, Dislikes: 1},
			requested: models.ReactionLike,
			expected:  State{Kind: models.ReactionNone, Likes: 5, Dislikes: 1},
		},
		{
			name:      "toggle dislike off",
			state:     State{Kind: models.ReactionDislike, Likes: 5, Dislikes: 2},
			requested: models.ReactionDislike,
			expected:  State{Kind: models.ReactionNone, Likes: 5, Dislikes: 1},
		},
		{
			name:      "switch like to dislike in one step",
			state:     State{Kind: models.ReactionLike, Likes: 6, Dislikes: 1},
			requested: models.ReactionDislike,
			expected:  State{Kind: models.ReactionDislike, Likes: 5, Dislikes: 2},
		},
		{
			name:      "switch dislike to like in one step",
			state:     State{Kind: models.ReactionDislike, Likes: 2, Dislikes: 4},
			requested: models.ReactionLike,
			expected:  State{Kind: models.ReactionLike, Likes: 3, Dislikes: 3},
		},
		{
			name:      "toggle off floors at zero",
			state:     State{Kind: models.ReactionLike, Likes: 0, Dislikes: 0},
			requested: models.ReactionLike,
			expected:  State{Kind: models.ReactionNone, Likes: 0, Dislikes: 0},
		},
		{
			name:      "switch floors previous count at zero",
			state:     State{Kind: models.ReactionDislike, Likes: 1, Dislikes: 0},
			requested: models.ReactionLike,
			expected:  State{Kind: models.ReactionLike, Likes: 2, Dislikes: 0},
		},
		{
			name:      "requesting none is a no-op",
			state:     State{Kind: models.ReactionLike, Likes: 3, Dislikes: 1},
			requested: models.ReactionNone,
			expected:  State{Kind: models.ReactionLike, Likes: 3, Dislikes: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(tt.state, tt.requested)
			if result != tt.expected {
				t.Errorf("Apply(%+v, %s) = %+v, want %+v", tt.state, tt.requested, result, tt.expected)
			}
		})
	}
}

func TestApplyWalk(t *testing.T) {
	// like, then dislike, then dislike again returns to the origin
	s := State{Kind: models.ReactionNone, Likes: 5, Dislikes: 1}

	s = Apply(s, models.ReactionLike)
	if s != (State{Kind: models.ReactionLike, Likes: 6, Dislikes: 1}) {
		t.Fatalf("after like: %+v", s)
	}

	s = Apply(s, models.ReactionDislike)
	if s != (State{Kind: models.ReactionDislike, Likes: 5, Dislikes: 2}) {
		t.Fatalf("after dislike: %+v", s)
	}

	s = Apply(s, models.ReactionDislike)
	if s != (State{Kind: models.ReactionNone, Likes: 5, Dislikes: 1}) {
		t.Fatalf("after second dislike: %+v", s)
	}
}

func TestApplyCountsNeverNegative(t *testing.T) {
	kinds := []models.ReactionKind{
		models.ReactionLike, models.ReactionLike, models.ReactionDislike,
		models.ReactionDislike, models.ReactionLike, models.ReactionDislike,
	}

	s := State{Kind: models.ReactionNone}
	for _, k := range kinds {
		s = Apply(s, k)
		if s.Likes < 0 || s.Dislikes < 0 {
			t.Fatalf("negative count after %s: %+v", k, s)
		}
	}
}

type recordingSender struct {
	calls   []string
	failOn  string
	lastErr error
}

func (r *recordingSender) call(name string) error {
	r.calls = append(r.calls, name)
	if r.failOn == name {
		r.lastErr = errors.New(name + " rejected")
		return r.lastErr
	}
	return nil
}

func (r *recordingSender) Like(_ context.Context, _ string) error    { return r.call("like") }
func (r *recordingSender) Dislike(_ context.Context, _ string) error { return r.call("dislike") }
func (r *recordingSender) RemoveReaction(_ context.Context, _ string) error {
	return r.call("remove")
}

func TestSend(t *testing.T) {
	tests := []struct {
		name      string
		prev      models.ReactionKind
		requested models.ReactionKind
		failOn    string
		wantCalls []string
		wantErr   bool
	}{
		{
			name:      "turn on issues a single call",
			prev:      models.ReactionNone,
			requested: models.ReactionLike,
			wantCalls: []string{"like"},
		},
		{
			name:      "toggle off only removes",
			prev:      models.ReactionDislike,
			requested: models.ReactionDislike,
			wantCalls: []string{"remove"},
		},
		{
			name:      "switch removes the previous reaction first",
			prev:      models.ReactionLike,
			requested: models.ReactionDislike,
			wantCalls: []string{"remove", "dislike"},
		},
		{
			name:      "failed removal aborts the sequence",
			prev:      models.ReactionLike,
			requested: models.ReactionDislike,
			failOn:    "remove",
			wantCalls: []string{"remove"},
			wantErr:   true,
		},
		{
			name:      "failed second call is reported",
			prev:      models.ReactionDislike,
			requested: models.ReactionLike,
			failOn:    "like",
			wantCalls: []string{"remove", "like"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{failOn: tt.failOn}
			err := Send(context.Background(), sender, "p1", tt.prev, tt.requested)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, sender.calls)
		})
	}
}
