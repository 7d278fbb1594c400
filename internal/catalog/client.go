// Package catalog talks to the Spotify Web API on behalf of the browser so
// that the app credentials never leave the server.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

const trackURIPrefix = "spotify:track:"

// ErrUnsupportedURI is returned for playlist additions that are not track URIs.
var ErrUnsupportedURI = errors.New("unsupported track uri")

// Client performs catalog calls with a token from the shared cache.
type Client struct {
	tokens  *TokenCache
	baseURL string
}

// NewClient returns a Client. An empty baseURL uses the public API.
func NewClient(tokens *TokenCache, baseURL string) *Client {
	return &Client{
		tokens:  tokens,
		baseURL: baseURL,
	}
}

// api builds a catalog client carrying the current access token.
func (c *Client) api(ctx context.Context) (*spotify.Client, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var opts []spotify.ClientOption
	if c.baseURL != "" {
		opts = append(opts, spotify.WithBaseURL(c.baseURL))
	}
	return spotify.New(oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok)), opts...), nil
}

// SearchTracks returns up to limit tracks matching query.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]SearchTrack, error) {
	api, err := c.api(ctx)
	if err != nil {
		return nil, err
	}

	res, err := api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}
	return NormalizeTracks(res.Tracks), nil
}

// AddToPlaylist appends one track to playlistID. Repeated calls append
// duplicates.
func (c *Client) AddToPlaylist(ctx context.Context, playlistID, trackURI string) error {
	id, err := TrackID(trackURI)
	if err != nil {
		return err
	}

	api, err := c.api(ctx)
	if err != nil {
		return err
	}

	if _, err := api.AddTracksToPlaylist(ctx, spotify.ID(playlistID), id); err != nil {
		return fmt.Errorf("add track to playlist %s: %w", playlistID, err)
	}
	return nil
}

// TrackID accepts "spotify:track:<id>" or a bare id.
func TrackID(uri string) (spotify.ID, error) {
	uri = strings.TrimSpace(uri)
	id := strings.TrimPrefix(uri, trackURIPrefix)
	if id == "" || strings.Contains(id, ":") || strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURI, uri)
	}
	return spotify.ID(id), nil
}
