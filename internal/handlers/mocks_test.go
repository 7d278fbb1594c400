package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/catalog"
)

type mockDynamo struct {
	mu         sync.Mutex
	batchCalls int
	putCalls   int
	putTables  []string
	putItems   []map[string]types.AttributeValue
	err        error
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	m.putTables = append(m.putTables, *params.TableName)
	m.putItems = append(m.putItems, params.Item)
	if m.err != nil {
		return nil, m.err
	}
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) BatchWriteItem(ctx context.Context, params *dyn.BatchWriteItemInput, optFns ...func(*dyn.Options)) (*dyn.BatchWriteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	if m.err != nil {
		return nil, m.err
	}
	return &dyn.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{}}, nil
}

type mockSender struct {
	bodies []string
	attrs  []map[string]string
	err    error
}

func (m *mockSender) SendEvent(ctx context.Context, body string, attrs map[string]string) error {
	m.bodies = append(m.bodies, body)
	m.attrs = append(m.attrs, attrs)
	return m.err
}

type fakeCatalog struct {
	tracks   []catalog.SearchTrack
	err      error
	searches int
	added    []string
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]catalog.SearchTrack, error) {
	f.searches++
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks, nil
}

func (f *fakeCatalog) AddToPlaylist(ctx context.Context, playlistID, trackURI string) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, playlistID+"|"+trackURI)
	return nil
}

func testRouter(methods, errorKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterConfig{
		Log:          zap.NewNop(),
		CORSOrigin:   "https://wedding.example",
		AllowMethods: methods,
		MaxBodyBytes: 1 << 10,
		ErrorKey:     errorKey,
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func assertCORS(t *testing.T, w *httptest.ResponseRecorder, methods string) {
	t.Helper()
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://wedding.example" {
		t.Fatalf("origin header mismatch: %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != methods {
		t.Fatalf("methods header mismatch: %q", got)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("content type mismatch: %q", got)
	}
}
