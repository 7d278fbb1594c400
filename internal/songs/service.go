package songs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Writer persists song requests.
type Writer interface {
	Put(ctx context.Context, req SongRequest) error
}

// Service accepts song requests. Without a Writer requests are only logged.
type Service struct {
	store   Writer
	log     *zap.Logger
	newID   func() string
	nowFunc func() time.Time
}

// NewService returns a Service. store may be nil.
func NewService(store Writer, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		log:     log,
		newID:   uuid.NewString,
		nowFunc: time.Now,
	}
}

// Persistent reports whether requests are written to a table.
func (s *Service) Persistent() bool { return s.store != nil }

// Submit normalises, logs and, when a store is configured, persists a request.
func (s *Service) Submit(ctx context.Context, in Input, meta Meta) (*SongRequest, error) {
	req := Normalize(in, s.newID(), s.nowFunc(), meta)

	s.log.Info("song request",
		zap.String("id", req.ID),
		zap.String("song", fmt.Sprintf("%s by %s", req.SongName, req.ArtistName)),
		zap.String("requested_by", req.YourName),
		zap.String("message", req.Message),
		zap.String("spotify_uri", req.SpotifyURI),
		zap.String("timestamp", req.Timestamp),
		zap.String("user_agent", req.UserAgent),
		zap.String("source_ip", req.SourceIP),
		zap.Bool("persisted", s.Persistent()),
	)

	if s.store == nil {
		return &req, nil
	}
	if err := s.store.Put(ctx, req); err != nil {
		return nil, fmt.Errorf("persist song request %s: %w", req.ID, err)
	}
	return &req, nil
}
