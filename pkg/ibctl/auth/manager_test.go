package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenManagerSaveGetDelete(t *testing.T) {
	manager := TokenManager{CachePath: filepath.Join(t.TempDir(), "tokens.json")}

	_, ok, err := manager.GetToken("corp")
	require.NoError(t, err)
	require.False(t, ok)

	stored := StoredToken{AccessToken: "abc", Expiry: time.Now().Add(time.Hour)}
	require.NoError(t, manager.SaveToken("corp", stored))

	token, ok, err := manager.GetToken("corp")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", token.AccessToken)

	require.NoError(t, manager.DeleteToken("corp"))
	_, ok, err = manager.GetToken("corp")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRefreshIfNeededSkipsFreshToken(t *testing.T) {
	manager := TokenManager{CachePath: filepath.Join(t.TempDir(), "tokens.json")}
	require.NoError(t, manager.SaveToken("corp", StoredToken{
		AccessToken: "fresh",
		Expiry:      time.Now().Add(time.Hour),
	}))

	token, refreshed, err := manager.RefreshIfNeeded(context.Background(), "corp", oauth2.Config{})
	require.NoError(t, err)
	require.False(t, refreshed)
	require.Equal(t, "fresh", token.AccessToken)
}

func TestRefreshIfNeededFailsWithoutRefreshToken(t *testing.T) {
	manager := TokenManager{CachePath: filepath.Join(t.TempDir(), "tokens.json")}
	require.NoError(t, manager.SaveToken("corp", StoredToken{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Minute),
	}))

	_, _, err := manager.RefreshIfNeeded(context.Background(), "corp", oauth2.Config{})
	require.Error(t, err)
}

func TestResolveClientSecretPrecedence(t *testing.T) {
	secret, err := ResolveClientSecret("inline", "IGNORED_ENV", "")
	require.NoError(t, err)
	require.Equal(t, "inline", secret)

	t.Setenv("IBCTL_TEST_SECRET", " from-env ")
	secret, err = ResolveClientSecret("", "IBCTL_TEST_SECRET", "")
	require.NoError(t, err)
	require.Equal(t, "from-env", secret)

	_, err = ResolveClientSecret("", "IBCTL_TEST_SECRET_UNSET", "")
	require.Error(t, err)

	secret, err = ResolveClientSecret("", "", "")
	require.NoError(t, err)
	require.Empty(t, secret)
}
