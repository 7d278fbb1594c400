package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/notify"
	"github.com/imrishuroy/wedding-site-api/internal/rsvp"
)

type rsvpResponse struct {
	ID      string             `json:"id"`
	Guests  []rsvp.GuestRecord `json:"guests"`
	Message string             `json:"message"`
}

func newRSVPRouter(db *mockDynamo, songTable string, sender notify.Sender) http.Handler {
	r := testRouter(RSVPMethods, "message")
	RegisterRSVPRoutes(r, RSVPConfig{
		DynamoDBClient:    db,
		RSVPTable:         "rsvps",
		SongRequestsTable: songTable,
		Events:            notify.NewEmitter(sender, zap.NewNop()),
		Log:               zap.NewNop(),
	})
	return r
}

func TestRSVP_GuestsNumberedInOrder(t *testing.T) {
	db := &mockDynamo{}
	r := newRSVPRouter(db, "", nil)

	w := do(t, r, http.MethodPost, "/rsvp", `{"guests":[{"name":"A"},{"name":"B"},{"name":"C"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	assertCORS(t, w, RSVPMethods)

	var resp rsvpResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp.ID == "" || resp.Message != "RSVP saved successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Guests) != 3 {
		t.Fatalf("expected 3 guests, got %d", len(resp.Guests))
	}
	for i, g := range resp.Guests {
		if g.GuestNumber != i+1 || g.TotalGuestsInSubmission != 3 || g.SubmissionID != resp.ID {
			t.Fatalf("guest %d numbering wrong: %+v", i, g)
		}
	}
	if db.batchCalls != 1 {
		t.Fatalf("expected 1 batch write, got %d", db.batchCalls)
	}
}

func TestRSVP_BadInputWritesNothing(t *testing.T) {
	bodies := []string{
		`{"guests":[]}`,
		`{}`,
		``,
		`{"guests":`,
		`{"guests":"Alex"}`,
		`{"guests":null}`,
		`{"guests":[1,2]}`,
		`{"guests":[null]}`,
		`{"guests":[{"name":"Alex"},null]}`,
		`[{"name":"Alex"}]`,
	}

	for _, body := range bodies {
		db := &mockDynamo{}
		r := newRSVPRouter(db, "", nil)

		w := do(t, r, http.MethodPost, "/rsvp", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Guests array is required") {
			t.Fatalf("body %q: unexpected message %s", body, w.Body.String())
		}
		if db.batchCalls != 0 {
			t.Fatalf("body %q: expected no batch write, got %d", body, db.batchCalls)
		}
	}
}

func TestRSVP_GuestDefaults(t *testing.T) {
	r := newRSVPRouter(&mockDynamo{}, "", nil)

	w := do(t, r, http.MethodPost, "/rsvp", `{"guests":[{"name":"Alex"},{"name":"Sam","attending":false},{"name":"  "}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var resp rsvpResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	alex := resp.Guests[0]
	if alex.Name != "Alex" || alex.Dietary != "" || !alex.Attending || alex.Type != rsvp.RecordType {
		t.Fatalf("unexpected defaults: %+v", alex)
	}
	if resp.Guests[1].Attending {
		t.Fatal("expected Sam not attending")
	}
	if resp.Guests[2].Name != "Unknown" {
		t.Fatalf("expected blank name to default, got %q", resp.Guests[2].Name)
	}
	if alex.SourceIP != "192.0.2.1" {
		t.Fatalf("expected client ip fallback, got %q", alex.SourceIP)
	}
}

func TestRSVP_StoreFailureIsGeneric(t *testing.T) {
	db := &mockDynamo{err: errors.New("ResourceNotFoundException: table rsvps missing")}
	r := newRSVPRouter(db, "", nil)

	w := do(t, r, http.MethodPost, "/rsvp", `{"guests":[{"name":"Alex"}]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"message":"Internal Server Error"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRSVP_OptionsIndependentOfStore(t *testing.T) {
	db := &mockDynamo{err: errors.New("down")}
	r := newRSVPRouter(db, "", nil)

	for _, path := range []string{"/rsvp", "/song-request", "/anything"} {
		w := do(t, r, http.MethodOptions, path, `{"guests":[]}`)
		if w.Code != http.StatusOK || w.Body.Len() != 0 {
			t.Fatalf("%s: expected empty 200, got %d %q", path, w.Code, w.Body.String())
		}
		assertCORS(t, w, RSVPMethods)
	}
	if db.batchCalls != 0 || db.putCalls != 0 {
		t.Fatal("OPTIONS must not touch the store")
	}
}

func TestRSVP_UnknownRoute(t *testing.T) {
	r := newRSVPRouter(&mockDynamo{}, "", nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/rsvp"},
		{http.MethodPost, "/rsvp/"},
		{http.MethodPost, "/nope"},
		{http.MethodDelete, "/song-request"},
	} {
		w := do(t, r, tc.method, tc.path, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, w.Code)
		}
		if w.Body.String() != `{"message":"Not Found"}` {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		assertCORS(t, w, RSVPMethods)
	}
}

func TestRSVP_EventPublished(t *testing.T) {
	sender := &mockSender{}
	r := newRSVPRouter(&mockDynamo{}, "", sender)

	w := do(t, r, http.MethodPost, "/rsvp", `{"guests":[{"name":"A"},{"name":"B","attending":false}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if len(sender.bodies) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sender.bodies))
	}

	var ev notify.Event
	if err := json.Unmarshal([]byte(sender.bodies[0]), &ev); err != nil {
		t.Fatalf("bad event: %v", err)
	}
	if ev.Type != notify.TypeRSVPSubmitted || ev.GuestCount != 2 || ev.AttendingCount != 1 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if sender.attrs[0]["request_id"] == "" {
		t.Fatal("expected request id attribute")
	}
}

func TestRSVP_EventFailureKeepsResponse(t *testing.T) {
	r := newRSVPRouter(&mockDynamo{}, "", &mockSender{err: errors.New("sqs down")})

	w := do(t, r, http.MethodPost, "/rsvp", `{"guests":[{"name":"A"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 despite publish failure, got %d", w.Code)
	}
}

func TestRSVP_NoEventOnFailure(t *testing.T) {
	sender := &mockSender{}
	r := newRSVPRouter(&mockDynamo{err: errors.New("down")}, "", sender)

	do(t, r, http.MethodPost, "/rsvp", `{"guests":[{"name":"A"}]}`)
	if len(sender.bodies) != 0 {
		t.Fatalf("expected no event, got %d", len(sender.bodies))
	}
}

func TestSongRequest_LogOnly(t *testing.T) {
	db := &mockDynamo{}
	r := newRSVPRouter(db, "", nil)

	w := do(t, r, http.MethodPost, "/song-request", `{"songName":"Valerie","artistName":"Amy Winehouse"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.ID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Message != `Song request for "Valerie" received! We'll add it to our playlist.` {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if db.putCalls != 0 {
		t.Fatalf("expected no write without a table, got %d", db.putCalls)
	}
}

func TestSongRequest_EmptyBodyAccepted(t *testing.T) {
	r := newRSVPRouter(&mockDynamo{}, "", nil)

	w := do(t, r, http.MethodPost, "/song-request", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestSongRequest_Persisted(t *testing.T) {
	db := &mockDynamo{}
	sender := &mockSender{}
	r := newRSVPRouter(db, "song-requests", sender)

	w := do(t, r, http.MethodPost, "/song-request", `{"songName":"Valerie"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if db.putCalls != 1 || db.putTables[0] != "song-requests" {
		t.Fatalf("expected one put into song-requests, got %v", db.putTables)
	}
	if len(sender.bodies) != 1 || !strings.Contains(sender.bodies[0], string(notify.TypeSongRequested)) {
		t.Fatalf("expected song event, got %v", sender.bodies)
	}
}

func TestSongRequest_PersistFailure(t *testing.T) {
	r := newRSVPRouter(&mockDynamo{err: errors.New("throttled")}, "song-requests", nil)

	w := do(t, r, http.MethodPost, "/song-request", `{"songName":"Valerie"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "throttled") {
		t.Fatal("internal error leaked to client")
	}
}

func TestRSVP_BodyTooLarge(t *testing.T) {
	r := newRSVPRouter(&mockDynamo{}, "", nil)

	big := `{"guests":[{"name":"` + strings.Repeat("x", 2<<10) + `"}]}`
	w := do(t, r, http.MethodPost, "/rsvp", big)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newRSVPRouter(&mockDynamo{}, "", nil)

	w := do(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected health response: %d %s", w.Code, w.Body.String())
	}
}

func TestRSVP_NonStringGuestFieldsCoerced(t *testing.T) {
	db := &mockDynamo{}
	r := newRSVPRouter(db, "", nil)

	w := do(t, r, http.MethodPost, "/rsvp", `{"guests":[{"name":123,"dietary":false},{"name":null}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp rsvpResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Guests[0].Name != "123" || resp.Guests[0].Dietary != "false" {
		t.Fatalf("unexpected coercion: %+v", resp.Guests[0])
	}
	if resp.Guests[1].Name != "Unknown" {
		t.Fatalf("null name should default, got %q", resp.Guests[1].Name)
	}
	if db.batchCalls != 1 {
		t.Fatalf("expected 1 batch write, got %d", db.batchCalls)
	}
}

func TestSongRequest_NonStringFieldsAccepted(t *testing.T) {
	db := &mockDynamo{}
	r := newRSVPRouter(db, "song-requests", nil)

	w := do(t, r, http.MethodPost, "/song-request", `{"songName":5,"artistName":null,"yourName":7}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `Song request for \"5\" received!`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	item := db.putItems[0]
	if got := item["yourName"].(*types.AttributeValueMemberS).Value; got != "7" {
		t.Fatalf("expected coerced requester, got %q", got)
	}
}

func TestSongRequest_NonObjectBodyRejected(t *testing.T) {
	db := &mockDynamo{}
	r := newRSVPRouter(db, "song-requests", nil)

	for _, body := range []string{`[1]`, `"song"`, `{"songName":`} {
		w := do(t, r, http.MethodPost, "/song-request", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
	}
	if db.putCalls != 0 {
		t.Fatalf("expected no writes, got %d", db.putCalls)
	}
}

func TestSongRequest_EventUsesRecordTime(t *testing.T) {
	db := &mockDynamo{}
	sender := &mockSender{}
	r := newRSVPRouter(db, "song-requests", sender)

	if w := do(t, r, http.MethodPost, "/song-request", `{"songName":"Valerie"}`); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var ev notify.Event
	if err := json.Unmarshal([]byte(sender.bodies[0]), &ev); err != nil {
		t.Fatalf("bad event: %v", err)
	}
	stored := db.putItems[0]["createdAt"].(*types.AttributeValueMemberS).Value
	want, err := time.Parse("2006-01-02T15:04:05.000Z", stored)
	if err != nil {
		t.Fatalf("bad stored timestamp %q: %v", stored, err)
	}
	if !ev.CreatedAt.Equal(want) {
		t.Fatalf("event time %v differs from record time %v", ev.CreatedAt, want)
	}
}
