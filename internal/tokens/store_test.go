package tokens

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alex_design",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store := NewStore(path)
	require.NoError(t, store.Set("access-token", "refresh-token"))

	// A fresh store over the same file sees the persisted pair.
	reloaded := NewStore(path)
	assert.Equal(t, "access-token", reloaded.Access())
	assert.Equal(t, "refresh-token", reloaded.Refresh())
}

func TestStoreClearPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store := NewStore(path)
	require.NoError(t, store.Set("access-token", "refresh-token"))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.Access())
	assert.Empty(t, store.Refresh())

	reloaded := NewStore(path)
	assert.Empty(t, reloaded.Access())
	assert.Empty(t, reloaded.Refresh())
}

func TestStoreMissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Empty(t, store.Access())
	assert.Empty(t, store.Refresh())
}

func TestStoreCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)
	assert.Empty(t, store.Access())

	// The store must still accept a new pair after discarding the bad file.
	require.NoError(t, store.Set("a", "r"))
	assert.Equal(t, "a", store.Access())
}

func TestExpiredAccessTokenTreatedAsAbsent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, store.Set(signedToken(t, time.Now().Add(-time.Hour)), "refresh-token"))

	assert.Empty(t, store.Access())
	// The refresh token is not expiry-checked.
	assert.Equal(t, "refresh-token", store.Refresh())
}

func TestValidAccessTokenIsReturned(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	access := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Set(access, "refresh-token"))

	assert.Equal(t, access, store.Access())
}

func TestOpaqueAccessTokenIsKept(t *testing.T) {
	// Tokens that are not parseable JWTs carry no expiry to check.
	store := NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, store.Set("opaque-session-id", "refresh-token"))

	assert.Equal(t, "opaque-session-id", store.Access())
}

func TestStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tokens.json")

	store := NewStore(path)
	require.NoError(t, store.Set("a", "r"))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
