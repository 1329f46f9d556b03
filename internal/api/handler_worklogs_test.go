package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daytrack/internal/store"
)

func TestCreateWorklog_LogsActivity(t *testing.T) {
	s := store.NewMemory()
	r := newTestRouter(s)

	w := doRequest(t, r, http.MethodPost, "/api/worklogs", map[string]any{
		"date":    "2026-08-31T09:00:00Z",
		"hours":   7.5,
		"project": "Alpha",
	})
	require.Equal(t, http.StatusOK, w.Code)

	created := decodeBody[map[string]string](t, w)
	require.NotEmpty(t, created["id"])

	activities, err := s.Find(context.Background(), store.CollectionActivity, nil)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "work_logged", activities[0]["type"])
	assert.Equal(t, "Logged 7.5h", activities[0]["message"])
	assert.Equal(t, created["id"], activities[0]["related_id"])
}

func TestCreateWorklog_ValidatesHours(t *testing.T) {
	r := newTestRouter(store.NewMemory())

	for _, body := range []map[string]any{
		{"date": "2026-08-31T09:00:00Z", "hours": 25},
		{"date": "2026-08-31T09:00:00Z", "hours": -1},
		{"date": "2026-08-31T09:00:00Z"},
		{"hours": 5},
	} {
		w := doRequest(t, r, http.MethodPost, "/api/worklogs", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestCreateWorklog_ZeroHoursAllowed(t *testing.T) {
	r := newTestRouter(store.NewMemory())

	w := doRequest(t, r, http.MethodPost, "/api/worklogs", map[string]any{
		"date":  "2026-08-31T09:00:00Z",
		"hours": 0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListWorklogs_DemoFallbackWithoutStore(t *testing.T) {
	r := newTestRouter(nil)

	w := doRequest(t, r, http.MethodGet, "/api/worklogs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	logs := decodeBody[[]map[string]any](t, w)
	require.Len(t, logs, 7)
	assert.Equal(t, "General", logs[0]["project"])
	assert.Equal(t, 6.0, logs[0]["hours"])
	assert.NotEmpty(t, logs[0]["id"])
}
