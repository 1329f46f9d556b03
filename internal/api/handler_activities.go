package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daytrack/internal/model"
	"daytrack/internal/store"
)

const defaultActivityLimit = 20

// ActivityHandler serves the read-only activity feed. Writes happen only as
// side effects of task and worklog handlers.
type ActivityHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewActivityHandler(st store.Store, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{store: st, logger: logger}
}

// List handles GET /api/activities?limit=20, newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	if h.store == nil {
		c.JSON(http.StatusOK, model.DemoActivities(time.Now().UTC()))
		return
	}

	docs, err := h.store.Find(c.Request.Context(), store.CollectionActivity, nil,
		store.NewestFirst(), store.Limit(limit))
	if err != nil {
		h.logger.Warn("ListActivities: store query failed, serving demo data", zap.Error(err))
		c.JSON(http.StatusOK, model.DemoActivities(time.Now().UTC()))
		return
	}

	c.JSON(http.StatusOK, serializeAll(docs))
}
