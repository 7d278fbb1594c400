package music

import (
	"context"
	"fmt"

	"github.com/imrishuroy/wedding-site-api/internal/catalog"
	"github.com/imrishuroy/wedding-site-api/internal/songs"
)

// SearchLimit is the number of tracks requested per search.
const SearchLimit = 10

// Catalog is the subset of the catalog client the proxy uses.
type Catalog interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]catalog.SearchTrack, error)
	AddToPlaylist(ctx context.Context, playlistID, trackURI string) error
}

// SongRecorder accepts song requests.
type SongRecorder interface {
	Submit(ctx context.Context, in songs.Input, meta songs.Meta) (*songs.SongRequest, error)
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Tracks []catalog.SearchTrack `json:"tracks"`
}

// Ack is the body of a successful write action.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Result is what an action produced. Song is set when a song request was
// recorded.
type Result struct {
	Body any
	Song *songs.SongRequest
}

// Proxy runs actions.
type Proxy struct {
	catalog         Catalog
	songs           SongRecorder
	defaultPlaylist string
}

// NewProxy returns a Proxy adding to defaultPlaylist when a request names none.
func NewProxy(cat Catalog, rec SongRecorder, defaultPlaylist string) *Proxy {
	return &Proxy{
		catalog:         cat,
		songs:           rec,
		defaultPlaylist: defaultPlaylist,
	}
}

// Run executes a. Errors are upstream or persistence failures.
func (p *Proxy) Run(ctx context.Context, a Action, meta songs.Meta) (*Result, error) {
	return a.run(ctx, p, meta)
}

func (a *Search) run(ctx context.Context, p *Proxy, _ songs.Meta) (*Result, error) {
	tracks, err := p.catalog.SearchTracks(ctx, a.Query, SearchLimit)
	if err != nil {
		return nil, err
	}
	if tracks == nil {
		tracks = []catalog.SearchTrack{}
	}
	return &Result{Body: SearchResponse{Tracks: tracks}}, nil
}

func (a *AddToPlaylist) run(ctx context.Context, p *Proxy, _ songs.Meta) (*Result, error) {
	playlist := a.PlaylistID
	if playlist == "" {
		playlist = p.defaultPlaylist
	}
	if err := p.catalog.AddToPlaylist(ctx, playlist, a.TrackURI); err != nil {
		return nil, err
	}
	return &Result{Body: Ack{Success: true, Message: "Song added to playlist!"}}, nil
}

func (a *RequestSong) run(ctx context.Context, p *Proxy, meta songs.Meta) (*Result, error) {
	req, err := p.songs.Submit(ctx, a.input(), meta)
	if err != nil {
		return nil, fmt.Errorf("request song: %w", err)
	}
	return &Result{
		Body: Ack{Success: true, Message: "Song request received! We'll add it soon."},
		Song: req,
	}, nil
}
