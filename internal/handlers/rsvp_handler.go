package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
	"github.com/imrishuroy/wedding-site-api/internal/notify"
	"github.com/imrishuroy/wedding-site-api/internal/rsvp"
	"github.com/imrishuroy/wedding-site-api/internal/songs"
	"github.com/imrishuroy/wedding-site-api/internal/validation"
)

// RSVPMethods is the Access-Control-Allow-Methods value of the RSVP surface.
const RSVPMethods = "GET,POST,PUT,DELETE,OPTIONS"

// RSVPConfig groups dependencies for the RSVP surface.
type RSVPConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	RSVPTable      string
	// SongRequestsTable is optional; empty keeps song requests log-only.
	SongRequestsTable string
	Events            *notify.Emitter
	Log               *zap.Logger
}

// RegisterRSVPRoutes registers POST /rsvp, POST /song-request and the JSON 404.
func RegisterRSVPRoutes(r *gin.Engine, cfg RSVPConfig) {
	v := validation.New()
	guests := rsvp.NewService(rsvp.NewStore(cfg.DynamoDBClient, cfg.RSVPTable), cfg.Log)
	requests := newSongService(cfg.DynamoDBClient, cfg.SongRequestsTable, cfg.Log)

	r.POST("/rsvp", func(c *gin.Context) {
		ctx := c.Request.Context()

		body, err := validation.ReadBody(c)
		if err != nil {
			rsvpReadError(c, err)
			return
		}

		var req rsvp.SubmitRequest
		if err := validation.BindAndValidate(body, &req, v); err != nil {
			cfg.Log.Debug("rejected rsvp",
				zap.String("request_id", requestID(c)),
				zap.Any("fields", validation.FieldErrors(err)),
			)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Guests array is required"})
			return
		}

		sub, err := guests.Submit(ctx, req, sourceIP(c))
		if err != nil {
			if errors.Is(err, rsvp.ErrGuestsRequired) || errors.Is(err, rsvp.ErrInvalidGuest) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Guests array is required"})
				return
			}
			internalError(c, cfg.Log, "rsvp submission failed", err)
			return
		}

		cfg.Events.Emit(ctx, notify.Event{
			Type:           notify.TypeRSVPSubmitted,
			SubmissionID:   sub.ID,
			GuestCount:     len(sub.Guests),
			AttendingCount: sub.AttendingCount(),
			CreatedAt:      sub.CreatedAt,
		}, requestID(c))

		c.JSON(http.StatusCreated, gin.H{
			"id":      sub.ID,
			"guests":  sub.Guests,
			"message": "RSVP saved successfully",
		})
	})

	r.POST("/song-request", func(c *gin.Context) {
		ctx := c.Request.Context()

		body, err := validation.ReadBody(c)
		if err != nil {
			rsvpReadError(c, err)
			return
		}

		var in songs.Input
		if err := binding.JSON.BindBody(body, &in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		req, err := requests.Submit(ctx, in, requestMeta(c))
		if err != nil {
			internalError(c, cfg.Log, "song request failed", err)
			return
		}

		emitSongRequested(c, cfg.Events, req)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": fmt.Sprintf("Song request for \"%s\" received! We'll add it to our playlist.", req.SongName),
			"id":      req.ID,
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})
}

func rsvpReadError(c *gin.Context, err error) {
	if errors.Is(err, validation.ErrBodyTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Request body size exceeds limit"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

// internalError logs err and answers with the surface's generic 500.
func internalError(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.String("request_id", requestID(c)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}

// newSongService returns a songs.Service that persists only when table is set.
func newSongService(client aws.DynamoDBAPI, table string, log *zap.Logger) *songs.Service {
	var store songs.Writer
	if table != "" {
		store = songs.NewStore(client, table)
	}
	return songs.NewService(store, log)
}

func emitSongRequested(c *gin.Context, events *notify.Emitter, req *songs.SongRequest) {
	createdAt, err := req.CreatedTime()
	if err != nil {
		createdAt = time.Now().UTC()
	}
	events.Emit(c.Request.Context(), notify.Event{
		Type:          notify.TypeSongRequested,
		SongRequestID: req.ID,
		CreatedAt:     createdAt,
	}, requestID(c))
}
