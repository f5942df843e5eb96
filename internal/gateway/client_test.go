package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiy-net/radiy-client/internal/models"
	"github.com/radiy-net/radiy-client/internal/tokens"
	"github.com/radiy-net/radiy-client/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *tokens.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := tokens.NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	client, err := New(&config.GatewayConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, store, nil)
	require.NoError(t, err)
	return client, store
}

func TestNewRequiresBaseURL(t *testing.T) {
	store := tokens.NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	_, err := New(&config.GatewayConfig{}, store, nil)
	assert.Error(t, err)
}

func TestRequestCarriesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(models.User{Username: "alex_design"})
	})
	require.NoError(t, store.Set("access-token", "refresh-token"))

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alex_design", user.Username)
	assert.Equal(t, "Bearer access-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestRequestWithoutTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{})
	})

	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedResponsesMapToErrUnauthorized(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})

		_, err := client.Me(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized, "status %d", code)
	}
}

func TestOtherFailuresMapToStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed unavailable", http.StatusInternalServerError)
	})

	_, err := client.Posts(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, statusErr.Message, "feed unavailable")
}

func TestSignInDecodesTokenPair(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/signin", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alex_design", body["username"])
		assert.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(models.TokenPair{Access: "a", Refresh: "r"})
	})

	pair, err := client.SignIn(context.Background(), "alex_design", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.TokenPair{Access: "a", Refresh: "r"}, pair)
}

func TestSignOutClearsTokensOnSuccess(t *testing.T) {
	var gotRefresh string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotRefresh = body["refresh_token"]
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, store.Set("access-token", "refresh-token"))

	require.NoError(t, client.SignOut(context.Background()))
	assert.Equal(t, "refresh-token", gotRefresh)
	assert.Empty(t, store.Access())
	assert.Empty(t, store.Refresh())
}

func TestSignOutKeepsTokensOnFailure(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	require.NoError(t, store.Set("access-token", "refresh-token"))

	require.Error(t, client.SignOut(context.Background()))
	assert.Equal(t, "access-token", store.Access())
	assert.Equal(t, "refresh-token", store.Refresh())
}

func TestPostsFetchesWithoutCache(t *testing.T) {
	hits := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/posts", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Post{{ID: "p1"}, {ID: "p2"}})
	})

	posts, err := client.Posts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	_, err = client.Posts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, hits, "no cache configured, every fetch goes to the network")
}

func TestCreatePostTargetsCommunity(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/post/create", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["text"])
		assert.Equal(t, "gophers", body["community"])
		_, hasImage := body["image"]
		assert.False(t, hasImage, "empty image must be omitted")

		json.NewEncoder(w).Encode(models.Post{ID: "created", Text: "hello"})
	})

	post, err := client.CreatePost(context.Background(), "hello", "", "gophers")
	require.NoError(t, err)
	assert.Equal(t, "created", post.ID)
}

func TestReactionPaths(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	require.NoError(t, client.Like(ctx, "p1"))
	require.NoError(t, client.Dislike(ctx, "p1"))
	require.NoError(t, client.RemoveReaction(ctx, "p1"))

	assert.Equal(t, []string{
		"/post/p1/like",
		"/post/p1/dislike",
		"/post/p1/remove_reaction",
	}, paths)
}

func TestPostsByUserEscapesPath(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode([]models.Post{})
	})

	_, err := client.PostsByUser(context.Background(), "user/with slash")
	require.NoError(t, err)
	assert.Equal(t, "/user/user%2Fwith%20slash/posts", gotPath)
}
