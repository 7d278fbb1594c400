package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// earlyExpiry is how long before the upstream expiry a token is refreshed.
const earlyExpiry = time.Minute

// Credentials identify the application to the catalog's token endpoint.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
	TokenURL     string
}

// TokenCache holds one access token for the life of the process and fetches
// a new one when it is missing or about to expire.
type TokenCache struct {
	mu      sync.Mutex
	fetch   func(ctx context.Context) (*oauth2.Token, error)
	token   *oauth2.Token
	nowFunc func() time.Time
}

// NewTokenCache picks the grant from creds: refresh-token when a refresh
// token is present, client-credentials otherwise.
func NewTokenCache(creds Credentials) *TokenCache {
	if creds.RefreshToken != "" {
		return newTokenCache(refreshGrant(creds))
	}
	return newTokenCache(clientCredentialsGrant(creds))
}

func newTokenCache(fetch func(ctx context.Context) (*oauth2.Token, error)) *TokenCache {
	return &TokenCache{
		fetch:   fetch,
		nowFunc: time.Now,
	}
}

// Token returns the cached token or refreshes it.
func (c *TokenCache) Token(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid() {
		return c.token, nil
	}

	tok, err := c.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh catalog token: %w", err)
	}
	c.token = tok
	return tok, nil
}

func (c *TokenCache) valid() bool {
	if c.token == nil || c.token.AccessToken == "" {
		return false
	}
	if c.token.Expiry.IsZero() {
		return true
	}
	return c.nowFunc().Add(earlyExpiry).Before(c.token.Expiry)
}

func refreshGrant(creds Credentials) func(ctx context.Context) (*oauth2.Token, error) {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  creds.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	return func(ctx context.Context) (*oauth2.Token, error) {
		return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken}).Token()
	}
}

func clientCredentialsGrant(creds Credentials) func(ctx context.Context) (*oauth2.Token, error) {
	conf := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	return conf.Token
}
