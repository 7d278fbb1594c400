package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeCatalog serves the token endpoint and the few API routes we call.
type fakeCatalog struct {
	mu          sync.Mutex
	srv         *httptest.Server
	tokenCalls  int
	grants      []string
	tokenStatus int
	expiresIn   int
	searchQuery string
	searchLimit string
	authHeaders []string
	tracks      []map[string]any
	added       map[string][]string
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	f := &fakeCatalog{
		tokenStatus: http.StatusOK,
		expiresIn:   3600,
		added:       map[string][]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.tokenCalls++
		_ = r.ParseForm()
		f.grants = append(f.grants, r.PostForm.Get("grant_type"))
		if _, _, ok := r.BasicAuth(); !ok {
			http.Error(w, "missing client auth", http.StatusUnauthorized)
			return
		}
		if f.tokenStatus != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-" + r.PostForm.Get("grant_type"),
			"token_type":   "Bearer",
			"expires_in":   f.expiresIn,
		})
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		f.searchQuery = r.URL.Query().Get("q")
		f.searchLimit = r.URL.Query().Get("limit")
		items := f.tracks
		if items == nil {
			items = []map[string]any{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{
				"href":  "",
				"items": items,
				"limit": 10,
				"total": len(items),
			},
		})
	})
	mux.HandleFunc("/v1/playlists/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/tracks") {
			http.NotFound(w, r)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/playlists/"), "/tracks")
		var body struct {
			URIs []string `json:"uris"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.added[id] = append(f.added[id], body.URIs...)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"snapshot_id":"snap-1"}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeCatalog) creds(refreshToken string) Credentials {
	return Credentials{
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: refreshToken,
		TokenURL:     f.srv.URL + "/api/token",
	}
}

func (f *fakeCatalog) apiURL() string { return f.srv.URL + "/v1/" }

func track(id, name string, artists []string, images ...string) map[string]any {
	as := make([]map[string]any, 0, len(artists))
	for _, a := range artists {
		as = append(as, map[string]any{"name": a})
	}
	imgs := make([]map[string]any, 0, len(images))
	for _, u := range images {
		imgs = append(imgs, map[string]any{"url": u, "height": 64, "width": 64})
	}
	return map[string]any{
		"id":          id,
		"uri":         "spotify:track:" + id,
		"name":        name,
		"artists":     as,
		"preview_url": "https://p.example/" + id,
		"album": map[string]any{
			"name":   name + " album",
			"images": imgs,
		},
	}
}
