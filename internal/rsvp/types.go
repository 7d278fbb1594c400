package rsvp

import (
	"encoding/json"
	"time"

	"github.com/imrishuroy/wedding-site-api/internal/validation"
)

// RecordType is the discriminator stored on every guest row.
const RecordType = "guest"

// GuestInput is one guest as posted by the RSVP form.
type GuestInput struct {
	Name    validation.Text `json:"name"`
	Dietary validation.Text `json:"dietary"`
	// Attending is kept raw: only a literal false means "not attending".
	Attending json.RawMessage `json:"attending,omitempty"`
}

// SubmitRequest is the payload for POST /rsvp
type SubmitRequest struct {
	// Null entries fail dive,required; they are not guests.
	Guests []*GuestInput `json:"guests" validate:"required,min=1,dive,required"`
}

// GuestRecord is the item stored in the RSVP DynamoDB table, one per guest.
type GuestRecord struct {
	ID                      string `json:"id" dynamodbav:"id"` // PK
	SubmissionID            string `json:"submissionId" dynamodbav:"submissionId"`
	Name                    string `json:"name" dynamodbav:"name"`
	Dietary                 string `json:"dietary" dynamodbav:"dietary"`
	Attending               bool   `json:"attending" dynamodbav:"attending"`
	GuestNumber             int    `json:"guestNumber" dynamodbav:"guestNumber"` // 1-based
	TotalGuestsInSubmission int    `json:"totalGuestsInSubmission" dynamodbav:"totalGuestsInSubmission"`
	CreatedAt               string `json:"createdAt" dynamodbav:"createdAt"`
	SourceIP                string `json:"sourceIp" dynamodbav:"sourceIp"`
	Type                    string `json:"type" dynamodbav:"type"`
}

// Submission is one RSVP form post after normalisation.
type Submission struct {
	ID        string
	CreatedAt time.Time
	SourceIP  string
	Guests    []GuestRecord
}

// AttendingCount returns how many guests in the submission are attending.
func (s *Submission) AttendingCount() int {
	n := 0
	for _, g := range s.Guests {
		if g.Attending {
			n++
		}
	}
	return n
}
