package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/collabsec/ibctl/pkg/ibctl/auth"
	"github.com/collabsec/ibctl/pkg/ibctl/client"
	"github.com/collabsec/ibctl/pkg/ibctl/config"
)

func buildClient(cmdCtx context.Context, rt *runtimeState) (*client.Client, error) {
	// Server and token overrides bypass config and context resolution.
	if rt.serverOverride != "" && rt.tokenOverride != "" {
		options := []client.Option{
			client.WithServer(rt.serverOverride),
			client.WithToken(rt.tokenOverride),
			client.WithUserAgent("ibctl"),
		}
		if rt.cfg != nil && rt.cfg.Settings.Timeout != "" {
			if timeout, parseErr := time.ParseDuration(rt.cfg.Settings.Timeout); parseErr == nil {
				options = append(options, client.WithTimeout(timeout))
			}
		}
		options = append(options, client.WithTLSConfig("", false))
		if rt.verbose {
			options = append(options, client.WithVerbose(verboseLogf))
		}
		return client.New(options...)
	}

	if err := rt.EnsureConfigLoaded(); err != nil {
		return nil, err
	}
	ctxCfg, err := rt.ResolveContext()
	if err != nil {
		return nil, err
	}
	server := rt.resolveServer(ctxCfg)
	if server == "" {
		return nil, errors.New("server is required")
	}

	token := rt.resolveToken()
	if token == "" {
		token, err = resolveTokenFromCache(cmdCtx, rt, ctxCfg)
		if err != nil {
			return nil, err
		}
	}
	options := []client.Option{
		client.WithServer(server),
		client.WithToken(token),
		client.WithUserAgent("ibctl"),
	}
	if rt.cfg != nil && rt.cfg.Settings.Timeout != "" {
		if timeout, parseErr := time.ParseDuration(rt.cfg.Settings.Timeout); parseErr == nil {
			options = append(options, client.WithTimeout(timeout))
		}
	}
	options = append(options, client.WithTLSConfig(resolveCAFile(ctxCfg, rt), ctxCfg.InsecureSkipTLSVerify))
	if rt.verbose {
		options = append(options, client.WithVerbose(verboseLogf))
	}
	return client.New(options...)
}

// verboseLogf writes to stderr to keep stdout parseable.
func verboseLogf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
}

func resolveCAFile(ctxCfg *config.Context, rt *runtimeState) string {
	if ctxCfg == nil {
		return ""
	}
	if ctxCfg.CAFile != "" {
		return ctxCfg.CAFile
	}
	resolved, err := rt.cfg.ResolveOIDC(ctxCfg)
	if err == nil && resolved.CAFile != "" {
		return resolved.CAFile
	}
	return ""
}

func resolveTokenFromCache(cmdCtx context.Context, rt *runtimeState, ctxCfg *config.Context) (string, error) {
	resolved, err := rt.cfg.ResolveOIDC(ctxCfg)
	if err != nil {
		return "", err
	}
	providerKey := resolveProviderKey(ctxCfg, resolved)
	manager := auth.TokenManager{CachePath: config.DefaultTokenPath()}
	token, ok, err := manager.GetToken(providerKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("not authenticated; run 'ibctl auth login'")
	}

	secret, err := auth.ResolveClientSecret(resolved.ClientSecret, resolved.ClientSecretEnv, resolved.ClientSecretFile)
	if err != nil {
		return "", err
	}
	oidcCfg := auth.OIDCConfig{
		Authority:       resolved.Authority,
		ClientID:        resolved.ClientID,
		ClientSecret:    secret,
		Scopes:          resolved.Scopes,
		CAFile:          resolved.CAFile,
		InsecureSkipTLS: resolved.InsecureSkipTLS,
		ExtraAuthParams: resolved.ExtraAuthParams,
	}
	oauthResult, err := auth.BuildOAuthConfig(cmdCtx, oidcCfg)
	if err != nil {
		return "", err
	}
	if _, refreshed, err := manager.RefreshIfNeeded(cmdCtx, providerKey, oauthResult.OAuthConfig); err != nil {
		// Client-credentials tokens rarely carry a refresh token; a fresh
		// login is the refresh path.
		loginResult, loginErr := auth.ClientCredentialsLogin(cmdCtx, oidcCfg)
		if loginErr != nil {
			return "", loginErr
		}
		_ = manager.SaveToken(providerKey, auth.StoredToken{
			AccessToken:  loginResult.Token.AccessToken,
			RefreshToken: loginResult.Token.RefreshToken,
			TokenType:    loginResult.Token.TokenType,
			Expiry:       loginResult.Token.Expiry,
		})
		return loginResult.Token.AccessToken, nil
	} else if refreshed {
		token, _, _ = manager.GetToken(providerKey)
	}
	return token.AccessToken, nil
}
