package rsvp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GuestWriter persists a submission's guest records.
type GuestWriter interface {
	PutGuests(ctx context.Context, guests []GuestRecord) error
}

// Service accepts RSVP submissions.
type Service struct {
	store   GuestWriter
	log     *zap.Logger
	newID   func() string
	nowFunc func() time.Time
}

// NewService returns a Service writing through store.
func NewService(store GuestWriter, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		log:     log,
		newID:   uuid.NewString,
		nowFunc: time.Now,
	}
}

// Submit normalises req and writes every guest in one batch. Store errors
// are returned as-is for the caller to turn into a 500.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, sourceIP string) (*Submission, error) {
	sub, err := Normalize(req, s.newID(), s.nowFunc(), sourceIP, s.newID)
	if err != nil {
		return nil, err
	}

	s.log.Info("rsvp submission",
		zap.String("submission_id", sub.ID),
		zap.Int("guest_count", len(sub.Guests)),
		zap.Int("attending_count", sub.AttendingCount()),
		zap.String("primary_guest", sub.Guests[0].Name),
		zap.Array("guests", guestSummaries(sub.Guests)),
		zap.String("source_ip", sub.SourceIP),
	)

	if err := s.store.PutGuests(ctx, sub.Guests); err != nil {
		return nil, fmt.Errorf("persist submission %s: %w", sub.ID, err)
	}
	return sub, nil
}
