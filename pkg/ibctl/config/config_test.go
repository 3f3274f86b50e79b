package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.CurrentContext = "prod"
	cfg.Contexts = []Context{
		{
			Name:         "prod",
			Server:       "https://admin.tenant.example.com",
			OIDCProvider: "corp",
		},
	}
	cfg.OIDCProviders = []OIDCProvider{
		{
			Name:      "corp",
			Authority: "https://login.example.com/tenant",
			ClientID:  "ibctl",
		},
	}
	cfg.Settings.LogDir = "/var/log/ibctl"

	require.NoError(t, Save(path, &cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.CurrentContext, loaded.CurrentContext)
	require.Len(t, loaded.Contexts, 1)
	require.Len(t, loaded.OIDCProviders, 1)
	require.Equal(t, cfg.Contexts[0].Server, loaded.Contexts[0].Server)
	require.Equal(t, "/var/log/ibctl", loaded.Settings.LogDir)
}

func TestLoadDefaultsVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contexts:\n- name: a\n  server: https://x\n"), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, VersionV1, loaded.Version)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestResolveOIDCInline(t *testing.T) {
	cfg := DefaultConfig()
	ctx := Context{
		Name:   "local",
		Server: "https://localhost:8443",
		OIDC: &InlineOIDC{
			Authority: "https://localhost:9443/tenant",
			ClientID:  "ibctl",
		},
	}
	cfg.Contexts = []Context{ctx}

	resolved, err := cfg.ResolveOIDC(&ctx)
	require.NoError(t, err)
	require.Equal(t, ctx.OIDC.Authority, resolved.Authority)
	require.Equal(t, ctx.OIDC.ClientID, resolved.ClientID)
}

func TestResolveOIDCProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OIDCProviders = []OIDCProvider{
		{Name: "corp", Authority: "https://login.example.com/tenant", ClientID: "ibctl", ClientSecretEnv: "IBCTL_SECRET"},
	}
	ctx := Context{Name: "prod", Server: "https://admin.tenant.example.com", OIDCProvider: "corp"}
	cfg.Contexts = []Context{ctx}

	resolved, err := cfg.ResolveOIDC(&ctx)
	require.NoError(t, err)
	require.Equal(t, "corp", resolved.ProviderName)
	require.Equal(t, "IBCTL_SECRET", resolved.ClientSecretEnv)

	ctx.OIDCProvider = "missing"
	_, err = cfg.ResolveOIDC(&ctx)
	require.Error(t, err)
}

func TestCurrentContextOrDefault(t *testing.T) {
	cfg := DefaultConfig()
	require.Empty(t, cfg.CurrentContextOrDefault())

	cfg.Contexts = []Context{{Name: "first", Server: "https://a"}, {Name: "second", Server: "https://b"}}
	require.Equal(t, "first", cfg.CurrentContextOrDefault())

	cfg.CurrentContext = "second"
	require.Equal(t, "second", cfg.CurrentContextOrDefault())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Contexts = []Context{{Name: "prod", Server: "https://admin.tenant.example.com"}}
	require.NoError(t, cfg.Validate())

	cfg.Contexts = append(cfg.Contexts, Context{Name: "broken"})
	require.Error(t, cfg.Validate())

	cfg.Contexts = []Context{{Name: "  ", Server: "https://x"}}
	require.Error(t, cfg.Validate())
}
