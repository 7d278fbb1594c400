package rsvp

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultName = "Unknown"
	// TimestampLayout matches the ISO strings the site has always stored.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

var (
	// ErrGuestsRequired is returned when a submission carries no guests.
	ErrGuestsRequired = errors.New("guests array is required")
	// ErrInvalidGuest is returned for a guest entry that is not an object.
	ErrInvalidGuest = errors.New("guest entry must be an object")
)

// Normalize turns a decoded request into a fully defaulted Submission. Every
// record shares submissionID, now and sourceIP; newID supplies record ids.
func Normalize(req SubmitRequest, submissionID string, now time.Time, sourceIP string, newID func() string) (*Submission, error) {
	if len(req.Guests) == 0 {
		return nil, ErrGuestsRequired
	}

	now = now.UTC()
	createdAt := now.Format(TimestampLayout)
	total := len(req.Guests)

	guests := make([]GuestRecord, 0, total)
	for i, in := range req.Guests {
		if in == nil {
			return nil, fmt.Errorf("%w: guest %d", ErrInvalidGuest, i+1)
		}
		guests = append(guests, GuestRecord{
			ID:                      newID(),
			SubmissionID:            submissionID,
			Name:                    guestName(in.Name.String()),
			Dietary:                 in.Dietary.String(),
			Attending:               attending(in.Attending),
			GuestNumber:             i + 1,
			TotalGuestsInSubmission: total,
			CreatedAt:               createdAt,
			SourceIP:                sourceIP,
			Type:                    RecordType,
		})
	}

	return &Submission{
		ID:        submissionID,
		CreatedAt: now,
		SourceIP:  sourceIP,
		Guests:    guests,
	}, nil
}

func guestName(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultName
	}
	return name
}

func attending(raw []byte) bool {
	return !bytes.Equal(bytes.TrimSpace(raw), []byte("false"))
}
