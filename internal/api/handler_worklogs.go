package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daytrack/internal/model"
	"daytrack/internal/service"
	"daytrack/internal/store"
)

type WorklogHandler struct {
	store    store.Store
	activity *service.ActivityLogger
	logger   *zap.Logger
}

func NewWorklogHandler(st store.Store, activity *service.ActivityLogger, logger *zap.Logger) *WorklogHandler {
	return &WorklogHandler{store: st, activity: activity, logger: logger}
}

// List handles GET /api/worklogs.
func (h *WorklogHandler) List(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, model.DemoWorklogs(time.Now().UTC()))
		return
	}

	docs, err := h.store.Find(c.Request.Context(), store.CollectionWorklog, nil)
	if err != nil {
		h.logger.Warn("ListWorklogs: store query failed, serving demo data", zap.Error(err))
		c.JSON(http.StatusOK, model.DemoWorklogs(time.Now().UTC()))
		return
	}

	c.JSON(http.StatusOK, serializeAll(docs))
}

// Create handles POST /api/worklogs. Hours are validated at this boundary
// only (0 to 24 inclusive).
func (h *WorklogHandler) Create(c *gin.Context) {
	var payload model.WorklogPayload
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

	id, err := h.store.InsertOne(c.Request.Context(), store.CollectionWorklog, payload.Document(time.Now().UTC()))
	if err != nil {
		h.logger.Error("CreateWorklog: insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hours := strconv.FormatFloat(*payload.Hours, 'f', -1, 64)
	h.activity.Log(c.Request.Context(), service.ActivityWorkLogged, "Logged "+hours+"h", id)

	h.logger.Info("Worklog created", zap.String("worklog_id", id), zap.Float64("hours", *payload.Hours))
	c.JSON(http.StatusOK, gin.H{"id": id})
}
