package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"daytrack/pkg/metrics"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	taskHandler *TaskHandler,
	worklogHandler *WorklogHandler,
	noteHandler *NoteHandler,
	activityHandler *ActivityHandler,
	analyticsHandler *AnalyticsHandler,
	systemHandler *SystemHandler,
	logger *zap.Logger,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()

	// Open CORS policy: this is a personal tool, any origin may call it.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:    []string{"*"},
	}))

	r.Use(requestLogger(logger))
	r.Use(recordMetrics())

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(200, gin.H{"status": "ready", "database": "not configured"})
			return
		}

		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", systemHandler.Root)
	r.GET("/test", systemHandler.Test)

	api := r.Group("/api")
	{
		api.GET("/hello", systemHandler.Hello)

		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks", taskHandler.Create)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		api.GET("/worklogs", worklogHandler.List)
		api.POST("/worklogs", worklogHandler.Create)

		api.GET("/notes", noteHandler.List)
		api.POST("/notes", noteHandler.Create)
		api.PUT("/notes/:id", noteHandler.Update)
		api.DELETE("/notes/:id", noteHandler.Delete)

		api.GET("/activities", activityHandler.List)

		api.GET("/analytics/weekly", analyticsHandler.Weekly)
		api.GET("/analytics/monthly", analyticsHandler.Monthly)

		api.POST("/seed-dummy", systemHandler.SeedDummy)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func recordMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
