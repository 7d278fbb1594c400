package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
	"github.com/imrishuroy/wedding-site-api/internal/music"
	"github.com/imrishuroy/wedding-site-api/internal/notify"
	"github.com/imrishuroy/wedding-site-api/internal/songs"
	"github.com/imrishuroy/wedding-site-api/internal/validation"
)

// MusicMethods is the Access-Control-Allow-Methods value of the music surface.
const MusicMethods = "OPTIONS,POST,GET"

// MusicConfig groups dependencies for the music proxy surface.
type MusicConfig struct {
	Catalog           music.Catalog
	DynamoDBClient    aws.DynamoDBAPI
	SongRequestsTable string
	DefaultPlaylist   string
	Events            *notify.Emitter
	Log               *zap.Logger
}

type musicHandler struct {
	proxy  *music.Proxy
	v      *validatorv10.Validate
	events *notify.Emitter
	log    *zap.Logger
}

// RegisterMusicRoutes registers the action entry point and the dev-server
// shortcuts. Any other POST path is treated as the action entry point, so the
// handler works under an API Gateway stage prefix.
func RegisterMusicRoutes(r *gin.Engine, cfg MusicConfig) {
	h := &musicHandler{
		proxy:  music.NewProxy(cfg.Catalog, newSongService(cfg.DynamoDBClient, cfg.SongRequestsTable, cfg.Log), cfg.DefaultPlaylist),
		v:      validation.New(),
		events: cfg.Events,
		log:    cfg.Log,
	}

	// POST /		-> {action: search|addToPlaylist|requestSong, ...}
	r.POST("/", h.action)

	// POST /search		-> {query}
	r.POST("/search", h.search)

	// POST /add-song	-> flat song request body
	r.POST("/add-song", h.addSong)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			h.action(c)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})
}

func (h *musicHandler) action(c *gin.Context) {
	body, err := validation.ReadBody(c)
	if err != nil {
		musicDecodeError(c, err)
		return
	}

	a, err := music.Decode(body, h.v)
	if err != nil {
		musicDecodeError(c, err)
		return
	}
	h.run(c, a)
}

func (h *musicHandler) search(c *gin.Context) {
	body, err := validation.ReadBody(c)
	if err != nil {
		musicDecodeError(c, err)
		return
	}

	a := &music.Search{}
	if err := music.DecodeInto(body, a, h.v); err != nil {
		musicDecodeError(c, err)
		return
	}
	h.run(c, a)
}

func (h *musicHandler) addSong(c *gin.Context) {
	body, err := validation.ReadBody(c)
	if err != nil {
		musicDecodeError(c, err)
		return
	}

	var in songs.Input
	if err := binding.JSON.BindBody(body, &in); err != nil {
		musicDecodeError(c, validation.ErrInvalidBody)
		return
	}
	h.run(c, &music.RequestSong{SongData: in})
}

func (h *musicHandler) run(c *gin.Context, a music.Action) {
	res, err := h.proxy.Run(c.Request.Context(), a, requestMeta(c))
	if err != nil {
		h.log.Error("music action failed", zap.String("request_id", requestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if res.Song != nil {
		emitSongRequested(c, h.events, res.Song)
	}
	c.JSON(http.StatusOK, res.Body)
}

func musicDecodeError(c *gin.Context, err error) {
	msg := "Invalid request body"
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, validation.ErrBodyTooLarge):
		status, msg = http.StatusRequestEntityTooLarge, "Request body size exceeds limit"
	case errors.Is(err, music.ErrInvalidAction):
		msg = "Invalid action"
	case errors.Is(err, music.ErrQueryRequired):
		msg = "Query is required"
	case errors.Is(err, music.ErrTrackRequired):
		msg = "Track URI is required"
	}
	c.JSON(status, gin.H{"error": msg})
}
