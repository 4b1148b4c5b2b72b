// Package auth provides token acquisition for the Graph client using the
// OAuth2 client-credentials grant (app-only, no user sign-in).
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
)

// Ensure TokenProvider implements the interface.
var _ driven.TokenProvider = (*TokenProvider)(nil)

// graphDefaultScope requests every application permission granted to the
// app registration.
const graphDefaultScope = "https://graph.microsoft.com/.default"

// TokenProvider acquires app-only tokens from Microsoft Entra ID.
// Token caching and refresh are handled by the underlying oauth2
// TokenSource.
type TokenProvider struct {
	config *clientcredentials.Config
}

// NewTokenProvider creates a provider for the given app registration.
func NewTokenProvider(tenantID, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenantID),
			Scopes:       []string{graphDefaultScope},
		},
	}
}

// GetToken returns a valid access token, fetching a new one if the cached
// token has expired.
func (p *TokenProvider) GetToken(ctx context.Context) (string, error) {
	token, err := p.config.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire token: %w", err)
	}
	return token.AccessToken, nil
}
