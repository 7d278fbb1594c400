package songs

import (
	"time"

	"github.com/imrishuroy/wedding-site-api/internal/validation"
)

// Input is a song request as posted by the song-request widget. Every field
// is optional and any JSON value is accepted for it.
type Input struct {
	SongName   validation.Text `json:"songName"`
	ArtistName validation.Text `json:"artistName"`
	YourName   validation.Text `json:"yourName"`
	Message    validation.Text `json:"message"`
	SpotifyURI validation.Text `json:"spotifyUri"`
	Timestamp  validation.Text `json:"timestamp"`
	UserAgent  validation.Text `json:"userAgent"`
}

// Meta carries what the server knows about the caller.
type Meta struct {
	SourceIP  string
	UserAgent string
}

// SongRequest is a normalised song request, and the item stored in the
// song-requests table when one is configured.
type SongRequest struct {
	ID         string `json:"id" dynamodbav:"id"` // PK
	SongName   string `json:"songName" dynamodbav:"songName"`
	ArtistName string `json:"artistName" dynamodbav:"artistName"`
	YourName   string `json:"yourName" dynamodbav:"yourName"`
	Message    string `json:"message" dynamodbav:"message"`
	SpotifyURI string `json:"spotifyUri" dynamodbav:"spotifyUri"`
	Timestamp  string `json:"timestamp" dynamodbav:"timestamp"`
	UserAgent  string `json:"userAgent" dynamodbav:"userAgent"`
	SourceIP   string `json:"sourceIp" dynamodbav:"sourceIp"`
	CreatedAt  string `json:"createdAt" dynamodbav:"createdAt"`
}

// CreatedTime parses CreatedAt back into a time.
func (r *SongRequest) CreatedTime() (time.Time, error) {
	return time.Parse(timestampLayout, r.CreatedAt)
}
