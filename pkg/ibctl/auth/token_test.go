package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	cache := &TokenCache{Tokens: map[string]StoredToken{
		"corp": {
			AccessToken: "abc",
			TokenType:   "Bearer",
			Expiry:      time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		},
	}}
	require.NoError(t, SaveTokenCache(path, cache))

	loaded, err := LoadTokenCache(path)
	require.NoError(t, err)
	require.Equal(t, "abc", loaded.Tokens["corp"].AccessToken)
	require.Equal(t, "Bearer", loaded.Tokens["corp"].TokenType)
}

func TestSaveTokenCacheCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "tokens.json")
	require.NoError(t, SaveTokenCache(path, &TokenCache{}))

	loaded, err := LoadTokenCache(path)
	require.NoError(t, err)
	require.Empty(t, loaded.Tokens)
}

func TestLoadTokenCacheRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, SaveTokenCache(path, &TokenCache{}))

	_, err := LoadTokenCache(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
