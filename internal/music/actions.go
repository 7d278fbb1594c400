// Package music decodes music-proxy requests into typed actions and runs
// them against the catalog and the song-request service.
package music

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/wedding-site-api/internal/songs"
	"github.com/imrishuroy/wedding-site-api/internal/validation"
)

var (
	// ErrInvalidAction means the action discriminator named no known action.
	ErrInvalidAction = errors.New("invalid action")
	// ErrQueryRequired means a search had a blank query.
	ErrQueryRequired = errors.New("query is required")
	// ErrTrackRequired means an addToPlaylist had no track uri.
	ErrTrackRequired = errors.New("track uri is required")
)

// Action is one decoded proxy request. The set of implementations is closed
// to this package; Decode is the only place the discriminator is read.
type Action interface {
	run(ctx context.Context, p *Proxy, meta songs.Meta) (*Result, error)
	// invalid is returned when the decoded action fails validation.
	invalid() error
}

// Search looks tracks up in the catalog.
type Search struct {
	Query string `json:"query" validate:"notblank"`
}

// AddToPlaylist appends a track to PlaylistID, or to the default playlist.
type AddToPlaylist struct {
	TrackURI   string `json:"trackUri" validate:"notblank"`
	PlaylistID string `json:"playlistId"`
}

// RequestInfo is client metadata sent alongside a song request.
type RequestInfo struct {
	Timestamp validation.Text `json:"timestamp"`
	UserAgent validation.Text `json:"userAgent"`
}

// RequestSong records a guest's song request.
type RequestSong struct {
	SongData    songs.Input `json:"songData"`
	RequestInfo RequestInfo `json:"requestInfo"`
}

func (*Search) invalid() error        { return ErrQueryRequired }
func (*AddToPlaylist) invalid() error { return ErrTrackRequired }
func (*RequestSong) invalid() error   { return validation.ErrInvalidBody }

// input merges the request info into the song fields. Values in songData win.
func (a *RequestSong) input() songs.Input {
	in := a.SongData
	if in.Timestamp == "" {
		in.Timestamp = a.RequestInfo.Timestamp
	}
	if in.UserAgent == "" {
		in.UserAgent = a.RequestInfo.UserAgent
	}
	return in
}

var actions = map[string]func() Action{
	"search":        func() Action { return &Search{} },
	"addToPlaylist": func() Action { return &AddToPlaylist{} },
	"requestSong":   func() Action { return &RequestSong{} },
}

type envelope struct {
	Action json.RawMessage `json:"action"`
}

// name returns the discriminator. A missing or non-string value names no action.
func (e envelope) name() string {
	var s string
	if err := json.Unmarshal(e.Action, &s); err != nil {
		return ""
	}
	return s
}

// Decode reads the action discriminator from body and decodes the rest of
// body into the matching action.
func Decode(body []byte, v *validatorv10.Validate) (Action, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", validation.ErrInvalidBody, err)
	}

	newAction, ok := actions[env.name()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, env.Action)
	}

	a := newAction()
	if err := DecodeInto(body, a, v); err != nil {
		return nil, err
	}
	return a, nil
}

// DecodeInto decodes body into a known action, for routes that fix the
// action by path.
func DecodeInto(body []byte, a Action, v *validatorv10.Validate) error {
	err := validation.BindAndValidate(body, a, v)
	if errors.Is(err, validation.ErrValidation) {
		return fmt.Errorf("%w: %v", a.invalid(), err)
	}
	return err
}
