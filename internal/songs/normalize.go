package songs

import (
	"time"
)

const (
	defaultRequester = "Anonymous"
	unknown          = "unknown"
	timestampLayout  = "2006-01-02T15:04:05.000Z"
)

// Normalize applies the field defaults to in. It never fails: a request with
// no fields at all still yields a record.
func Normalize(in Input, id string, now time.Time, meta Meta) SongRequest {
	createdAt := now.UTC().Format(timestampLayout)

	return SongRequest{
		ID:         id,
		SongName:   in.SongName.String(),
		ArtistName: in.ArtistName.String(),
		YourName:   firstNonEmpty(in.YourName.String(), defaultRequester),
		Message:    in.Message.String(),
		SpotifyURI: in.SpotifyURI.String(),
		Timestamp:  firstNonEmpty(in.Timestamp.String(), createdAt),
		UserAgent:  firstNonEmpty(in.UserAgent.String(), meta.UserAgent, unknown),
		SourceIP:   firstNonEmpty(meta.SourceIP, unknown),
		CreatedAt:  createdAt,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
