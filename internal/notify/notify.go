// Package notify publishes RSVP and song-request events for the metrics worker.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Type identifies an event.
type Type string

const (
	TypeRSVPSubmitted Type = "rsvp.submitted"
	TypeSongRequested Type = "song.requested"
)

// Event is the message body sent to the events queue.
type Event struct {
	Type           Type      `json:"type"`
	SubmissionID   string    `json:"submission_id,omitempty"`
	SongRequestID  string    `json:"song_request_id,omitempty"`
	GuestCount     int       `json:"guest_count,omitempty"`
	AttendingCount int       `json:"attending_count,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Sender delivers a serialised event. aws.Publisher implements it.
type Sender interface {
	SendEvent(ctx context.Context, messageBody string, attributes map[string]string) error
}

// Emitter publishes events on a best-effort basis: failures are logged and
// never returned.
type Emitter struct {
	sender Sender
	log    *zap.Logger
}

// NewEmitter returns an Emitter. A nil sender disables publishing.
func NewEmitter(sender Sender, log *zap.Logger) *Emitter {
	return &Emitter{sender: sender, log: log}
}

// Emit publishes ev. requestID is attached as a message attribute.
func (e *Emitter) Emit(ctx context.Context, ev Event, requestID string) {
	if e == nil || e.sender == nil {
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		e.log.Error("marshal event", zap.String("type", string(ev.Type)), zap.Error(err))
		return
	}

	attrs := map[string]string{
		"event_type": string(ev.Type),
		"request_id": requestID,
	}
	if err := e.sender.SendEvent(ctx, string(body), attrs); err != nil {
		e.log.Warn("publish event failed",
			zap.String("type", string(ev.Type)),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}
