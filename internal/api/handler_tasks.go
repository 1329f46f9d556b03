package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daytrack/internal/model"
	"daytrack/internal/service"
	"daytrack/internal/store"
)

type TaskHandler struct {
	store    store.Store
	activity *service.ActivityLogger
	logger   *zap.Logger
}

func NewTaskHandler(st store.Store, activity *service.ActivityLogger, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{store: st, activity: activity, logger: logger}
}

// List handles GET /api/tasks. An optional ?status= filter narrows the
// result; when the store is unreachable a fixed demo payload is served so the
// endpoint never fails.
func (h *TaskHandler) List(c *gin.Context) {
	status := c.Query("status")

	if h.store == nil {
		c.JSON(http.StatusOK, model.DemoTasks(time.Now().UTC()))
		return
	}

	var filter store.Filter
	if status != "" {
		filter = store.Filter{"status": status}
	}

	docs, err := h.store.Find(c.Request.Context(), store.CollectionTask, filter)
	if err != nil {
		h.logger.Warn("ListTasks: store query failed, serving demo data", zap.Error(err))
		c.JSON(http.StatusOK, model.DemoTasks(time.Now().UTC()))
		return
	}

	c.JSON(http.StatusOK, serializeAll(docs))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var payload model.TaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not configured"})
		return
	}

	id, err := h.store.InsertOne(c.Request.Context(), store.CollectionTask, payload.Document(time.Now().UTC()))
	if err != nil {
		h.logger.Error("CreateTask: insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.activity.Log(c.Request.Context(), service.ActivityTaskCreated, "Created task: "+payload.Title, id)

	h.logger.Info("Task created", zap.String("task_id", id), zap.String("title", payload.Title))
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Update handles PUT /api/tasks/:id with partial-patch semantics: only the
// fields present in the body change, an explicit null clears a field.
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	patch := filterPatch(body, "title", "description", "status", "priority", "due_date", "tags")
	patch["updated_at"] = time.Now().UTC()

	doc, err := h.store.FindOneAndUpdate(c.Request.Context(), store.CollectionTask, id, patch)
	if err != nil {
		h.logger.Warn("UpdateTask: update failed", zap.String("task_id", id), zap.Error(err))
		respondStoreError(c, err, "Task not found")
		return
	}

	title, _ := doc["title"].(string)
	h.activity.Log(c.Request.Context(), service.ActivityTaskUpdated, "Updated task: "+title, id)

	c.JSON(http.StatusOK, store.Serialize(doc))
}

// Delete handles DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	doc, err := h.store.FindOneAndDelete(c.Request.Context(), store.CollectionTask, id)
	if err != nil {
		h.logger.Warn("DeleteTask: delete failed", zap.String("task_id", id), zap.Error(err))
		respondStoreError(c, err, "Task not found")
		return
	}

	title, _ := doc["title"].(string)
	h.activity.Log(c.Request.Context(), service.ActivityTaskDeleted, "Deleted task: "+title, id)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
