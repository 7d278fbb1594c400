package catalog

import (
	"strings"

	"github.com/zmb3/spotify/v2"
)

// preferredImage is the index of the album image size the song widget wants
// (the catalog lists images largest first).
const preferredImage = 2

// SearchTrack is one search hit as returned to the browser.
type SearchTrack struct {
	ID         string `json:"id"`
	URI        string `json:"uri"`
	Name       string `json:"name"`
	Artists    string `json:"artists"`
	Album      string `json:"album"`
	Image      string `json:"image,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// NormalizeTracks converts a search page. A nil page yields an empty slice.
func NormalizeTracks(page *spotify.FullTrackPage) []SearchTrack {
	if page == nil {
		return []SearchTrack{}
	}
	out := make([]SearchTrack, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		out = append(out, NormalizeTrack(t))
	}
	return out
}

// NormalizeTrack flattens a catalog track.
func NormalizeTrack(t spotify.FullTrack) SearchTrack {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}

	return SearchTrack{
		ID:         string(t.ID),
		URI:        string(t.URI),
		Name:       t.Name,
		Artists:    strings.Join(names, ", "),
		Album:      t.Album.Name,
		Image:      pickImage(t.Album.Images),
		PreviewURL: t.PreviewURL,
	}
}

func pickImage(images []spotify.Image) string {
	if len(images) > preferredImage && images[preferredImage].URL != "" {
		return images[preferredImage].URL
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}
