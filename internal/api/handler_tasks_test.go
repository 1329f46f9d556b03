package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daytrack/internal/store"
)

func TestCreateTask_AppliesDefaultsAndLogsActivity(t *testing.T) {
	s := store.NewMemory()
	r := newTestRouter(s)

	w := doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "Write report"})
	require.Equal(t, http.StatusOK, w.Code)

	created := decodeBody[map[string]string](t, w)
	require.NotEmpty(t, created["id"])

	docs, err := s.Find(context.Background(), store.CollectionTask, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Write report", docs[0]["title"])
	assert.Equal(t, "pending", docs[0]["status"])
	assert.Equal(t, "medium", docs[0]["priority"])
	assert.Equal(t, []string{}, docs[0]["tags"])
	assert.NotNil(t, docs[0]["created_at"])

	activities, err := s.Find(context.Background(), store.CollectionActivity, nil)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "task_created", activities[0]["type"])
	assert.Equal(t, "Created task: Write report", activities[0]["message"])
	assert.Equal(t, created["id"], activities[0]["related_id"])
}

func TestCreateTask_MissingTitle(t *testing.T) {
	r := newTestRouter(store.NewMemory())

	w := doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTask_StoreErrorSurfaces(t *testing.T) {
	r := newTestRouter(brokenStore{})

	w := doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "connection refused", body["error"])
}

func TestListTasks_FiltersByStatus(t *testing.T) {
	s := store.NewMemory()
	r := newTestRouter(s)

	doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "open one"})
	doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "done one", "status": "done"})

	w := doRequest(t, r, http.MethodGet, "/api/tasks?status=done", nil)
	require.Equal(t, http.StatusOK, w.Code)

	tasks := decodeBody[[]map[string]any](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, "done one", tasks[0]["title"])
	assert.NotEmpty(t, tasks[0]["id"])
}

func TestListTasks_DemoFallbackOnStoreFailure(t *testing.T) {
	r := newTestRouter(brokenStore{})

	w := doRequest(t, r, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	tasks := decodeBody[[]map[string]any](t, w)
	require.Len(t, tasks, 3)
	assert.Equal(t, "demo1", tasks[0]["id"])
	assert.Equal(t, "Plan the week", tasks[0]["title"])
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	s := store.NewMemory()
	r := newTestRouter(s)

	w := doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Ship release",
		"priority": "high",
		"tags":     []string{"release"},
	})
	id := decodeBody[map[string]string](t, w)["id"]

	w = doRequest(t, r, http.MethodPut, "/api/tasks/"+id, map[string]any{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeBody[map[string]any](t, w)
	assert.Equal(t, "done", updated["status"])
	assert.Equal(t, "Ship release", updated["title"])
	assert.Equal(t, "high", updated["priority"])
	assert.Equal(t, id, updated["id"])

	activities, err := s.Find(context.Background(), store.CollectionActivity, nil)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "task_updated", activities[1]["type"])
	assert.Equal(t, "Updated task: Ship release", activities[1]["message"])
}

func TestUpdateTask_ExplicitNullClearsDueDate(t *testing.T) {
	r := newTestRouter(store.NewMemory())

	w := doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":    "With deadline",
		"due_date": "2026-09-15T00:00:00Z",
	})
	id := decodeBody[map[string]string](t, w)["id"]

	w = doRequest(t, r, http.MethodPut, "/api/tasks/"+id, json.RawMessage(`{"due_date":null}`))
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeBody[map[string]any](t, w)
	assert.Nil(t, updated["due_date"])
	assert.Equal(t, "With deadline", updated["title"])
}

func TestUpdateTask_IgnoresUnknownFields(t *testing.T) {
	s := store.NewMemory()
	r := newTestRouter(s)

	w := doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "plain"})
	id := decodeBody[map[string]string](t, w)["id"]

	w = doRequest(t, r, http.MethodPut, "/api/tasks/"+id, map[string]any{"status": "done", "evil": "x"})
	require.Equal(t, http.StatusOK, w.Code)

	docs, err := s.Find(context.Background(), store.CollectionTask, nil)
	require.NoError(t, err)
	assert.NotContains(t, docs[0], "evil")
}

func TestUpdateTask_NotFound(t *testing.T) {
	r := newTestRouter(store.NewMemory())

	w := doRequest(t, r, http.MethodPut, "/api/tasks/0b862a38-4b25-4c2a-9d2e-6c9a1a3f1b70",
		map[string]any{"status": "done"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTask_InvalidID(t *testing.T) {
	r := newTestRouter(store.NewMemory())

	w := doRequest(t, r, http.MethodPut, "/api/tasks/not-an-id", map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "Invalid ID format", body["error"])
}

func TestTaskWrites_ServiceUnavailableWithoutStore(t *testing.T) {
	r := newTestRouter(nil)

	w := doRequest(t, r, http.MethodPut, "/api/tasks/0b862a38-4b25-4c2a-9d2e-6c9a1a3f1b70",
		map[string]any{"status": "done"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/tasks/0b862a38-4b25-4c2a-9d2e-6c9a1a3f1b70", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteTask(t *testing.T) {
	s := store.NewMemory()
	r := newTestRouter(s)

	w := doRequest(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "temp"})
	id := decodeBody[map[string]string](t, w)["id"]

	w = doRequest(t, r, http.MethodDelete, "/api/tasks/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = doRequest(t, r, http.MethodDelete, "/api/tasks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	activities, err := s.Find(context.Background(), store.CollectionActivity, nil)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "task_deleted", activities[1]["type"])
	assert.Equal(t, "Deleted task: temp", activities[1]["message"])
}
