package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daytrack/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.Analytics
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics *service.Analytics, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

// Weekly handles GET /api/analytics/weekly.
func (h *AnalyticsHandler) Weekly(c *gin.Context) {
	summary, err := h.analytics.Weekly(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("WeeklyAnalytics: aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Monthly handles GET /api/analytics/monthly.
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	summary, err := h.analytics.Monthly(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("MonthlyAnalytics: aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
