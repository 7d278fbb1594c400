package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
	"github.com/imrishuroy/wedding-site-api/internal/metrics"
	"github.com/imrishuroy/wedding-site-api/internal/notify"
)

// CountWriter receives the per-batch metric totals.
type CountWriter interface {
	PutCounts(ctx context.Context, counts map[string]float64) error
}

// Processor turns a batch of site events into headcount metrics.
type Processor struct {
	metrics CountWriter
	log     *zap.Logger
}

// NewProcessor creates a worker processor writing to namespace.
func NewProcessor(clients *aws.AWSClients, namespace string, log *zap.Logger) *Processor {
	return &Processor{
		metrics: metrics.NewEmitter(clients.CloudWatch, namespace),
		log:     log,
	}
}

// Handle aggregates every record and writes the totals once. A record that
// does not decode fails the whole batch so SQS redelivers it.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	counts := map[string]float64{}
	for _, rec := range ev.Records {
		if err := p.processMessage(rec, counts); err != nil {
			p.log.Error("worker error", zap.String("message_id", rec.MessageId), zap.Error(err))
			return err
		}
	}

	if err := p.metrics.PutCounts(ctx, counts); err != nil {
		return err
	}
	p.log.Info("batch processed",
		zap.Int("records", len(ev.Records)),
		zap.Any("counts", counts),
	)
	return nil
}

func (p *Processor) processMessage(rec events.SQSMessage, counts map[string]float64) error {
	var msg notify.Event
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	switch msg.Type {
	case notify.TypeRSVPSubmitted:
		counts[metrics.GuestsSubmitted] += float64(msg.GuestCount)
		counts[metrics.GuestsAttending] += float64(msg.AttendingCount)
	case notify.TypeSongRequested:
		counts[metrics.SongRequests]++
	default:
		p.log.Warn("skipping unknown event", zap.String("type", string(msg.Type)), zap.String("message_id", rec.MessageId))
	}
	return nil
}
