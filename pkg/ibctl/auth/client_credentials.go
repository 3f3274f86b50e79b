package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

func ClientCredentialsLogin(ctx context.Context, cfg OIDCConfig) (*LoginResult, error) {
	if cfg.Authority == "" || cfg.ClientID == "" {
		return nil, errors.New("authority and client-id are required")
	}
	result, err := BuildOAuthConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     result.OAuthConfig.Endpoint.TokenURL,
		Scopes:       cfg.Scopes,
	}
	if len(cfg.ExtraAuthParams) > 0 {
		cc.EndpointParams = url.Values{}
		for k, v := range cfg.ExtraAuthParams {
			cc.EndpointParams.Set(k, v)
		}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, result.Client)
	token, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("client credentials token failed: %w", err)
	}
	return &LoginResult{Token: token}, nil
}
