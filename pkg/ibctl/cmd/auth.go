package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/collabsec/ibctl/pkg/ibctl/auth"
	"github.com/collabsec/ibctl/pkg/ibctl/config"
)

func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate against the tenant",
	}
	cmd.AddCommand(
		newAuthLoginCommand(),
		newAuthStatusCommand(),
		newAuthLogoutCommand(),
	)
	return cmd
}

func resolveLoginConfig(rt *runtimeState) (*config.Context, *config.ResolvedOIDC, auth.OIDCConfig, error) {
	ctxCfg, err := rt.ResolveContext()
	if err != nil {
		return nil, nil, auth.OIDCConfig{}, err
	}
	resolved, err := rt.cfg.ResolveOIDC(ctxCfg)
	if err != nil {
		return nil, nil, auth.OIDCConfig{}, err
	}
	secret, err := auth.ResolveClientSecret(resolved.ClientSecret, resolved.ClientSecretEnv, resolved.ClientSecretFile)
	if err != nil {
		return nil, nil, auth.OIDCConfig{}, err
	}
	return ctxCfg, resolved, auth.OIDCConfig{
		Authority:       resolved.Authority,
		ClientID:        resolved.ClientID,
		ClientSecret:    secret,
		Scopes:          resolved.Scopes,
		CAFile:          resolved.CAFile,
		InsecureSkipTLS: resolved.InsecureSkipTLS,
		ExtraAuthParams: resolved.ExtraAuthParams,
	}, nil
}

func newAuthLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Obtain a token via client credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			ctxCfg, resolved, loginCfg, err := resolveLoginConfig(rt)
			if err != nil {
				return err
			}
			result, err := auth.ClientCredentialsLogin(context.Background(), loginCfg)
			if err != nil {
				return err
			}
			providerKey := resolveProviderKey(ctxCfg, resolved)
			manager := auth.TokenManager{CachePath: config.DefaultTokenPath()}
			stored := auth.StoredToken{
				AccessToken:  result.Token.AccessToken,
				RefreshToken: result.Token.RefreshToken,
				TokenType:    result.Token.TokenType,
				Expiry:       result.Token.Expiry,
			}
			if err := manager.SaveToken(providerKey, stored); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Authenticated. Token expires at %s\n", stored.Expiry.UTC().Format(time.RFC3339))
			return nil
		},
	}
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			ctxCfg, resolved, _, err := resolveLoginConfig(rt)
			if err != nil {
				return err
			}
			providerKey := resolveProviderKey(ctxCfg, resolved)
			manager := auth.TokenManager{CachePath: config.DefaultTokenPath()}
			token, ok, err := manager.GetToken(providerKey)
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(rt.Writer(), "Not authenticated")
				return nil
			}
			if !token.Expiry.IsZero() && time.Now().After(token.Expiry) {
				_, _ = fmt.Fprintf(rt.Writer(), "Token expired at %s; run 'ibctl auth login'\n", token.Expiry.UTC().Format(time.RFC3339))
				return nil
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Authenticated. Token expires at %s\n", token.Expiry.UTC().Format(time.RFC3339))
			return nil
		},
	}
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove cached token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			ctxCfg, err := rt.ResolveContext()
			if err != nil {
				return err
			}
			resolved, err := rt.cfg.ResolveOIDC(ctxCfg)
			if err != nil {
				return err
			}
			providerKey := resolveProviderKey(ctxCfg, resolved)
			manager := auth.TokenManager{CachePath: config.DefaultTokenPath()}
			if err := manager.DeleteToken(providerKey); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "Logged out")
			return nil
		},
	}
}

func resolveProviderKey(ctxCfg *config.Context, resolved *config.ResolvedOIDC) string {
	if resolved != nil && resolved.ProviderName != "" {
		return resolved.ProviderName
	}
	if ctxCfg != nil {
		return "inline:" + ctxCfg.Name
	}
	return "default"
}
