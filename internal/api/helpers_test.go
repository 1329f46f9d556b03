package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"daytrack/internal/service"
	"daytrack/internal/store"
)

func newTestRouter(st store.Store) *Router {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	activity := service.NewActivityLogger(st, log)
	analytics := service.NewAnalytics(st, nil, log)
	seeder := service.NewSeeder(st, log)

	return NewRouter(
		NewTaskHandler(st, activity, log),
		NewWorklogHandler(st, activity, log),
		NewNoteHandler(st, log),
		NewActivityHandler(st, log),
		NewAnalyticsHandler(analytics, log),
		NewSystemHandler(st, seeder, log),
		log,
		nil,
	)
}

func doRequest(t *testing.T, r *Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.Engine.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

var errStoreDown = errors.New("connection refused")

// brokenStore simulates a reachable-but-failing database: every operation
// errors so read endpoints must degrade to demo payloads.
type brokenStore struct{}

func (brokenStore) InsertOne(context.Context, string, store.Document) (string, error) {
	return "", errStoreDown
}

func (brokenStore) InsertMany(context.Context, string, []store.Document) ([]string, error) {
	return nil, errStoreDown
}

func (brokenStore) Find(context.Context, string, store.Filter, ...store.FindOption) ([]store.Document, error) {
	return nil, errStoreDown
}

func (brokenStore) FindOneAndUpdate(context.Context, string, string, store.Document) (store.Document, error) {
	return nil, errStoreDown
}

func (brokenStore) FindOneAndDelete(context.Context, string, string) (store.Document, error) {
	return nil, errStoreDown
}

func (brokenStore) ListCollections(context.Context) ([]string, error) {
	return nil, errStoreDown
}

func (brokenStore) Available(context.Context) bool {
	return false
}
