package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daytrack/internal/service"
	"daytrack/internal/store"
)

// SystemHandler covers the service-level endpoints: root banner, hello,
// database diagnostics and fixture seeding.
type SystemHandler struct {
	store  store.Store
	seeder *service.Seeder
	logger *zap.Logger
}

func NewSystemHandler(st store.Store, seeder *service.Seeder, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{store: st, seeder: seeder, logger: logger}
}

// Root handles GET /.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Daily Activity Tracker API is running"})
}

// Hello handles GET /api/hello.
func (h *SystemHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// Test handles GET /test, a diagnostics endpoint describing database
// connectivity. It always returns 200; the payload carries the status.
func (h *SystemHandler) Test(c *gin.Context) {
	response := gin.H{
		"backend":           "running",
		"database":          "not available",
		"db_host_set":       os.Getenv("DB_HOST") != "",
		"db_name_set":       os.Getenv("DB_NAME") != "",
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if h.store != nil {
		if h.store.Available(c.Request.Context()) {
			response["database"] = "connected"
			response["connection_status"] = "connected"
			if names, err := h.store.ListCollections(c.Request.Context()); err != nil {
				response["database"] = "connected but error: " + err.Error()
			} else {
				if len(names) > 10 {
					names = names[:10]
				}
				response["collections"] = names
			}
		} else {
			response["database"] = "configured but unreachable"
		}
	}

	c.JSON(http.StatusOK, response)
}

// SeedDummy handles POST /api/seed-dummy.
func (h *SystemHandler) SeedDummy(c *gin.Context) {
	if err := h.seeder.Run(c.Request.Context(), time.Now().UTC()); err != nil {
		h.logger.Error("SeedDummy: seeding failed", zap.Error(err))
		respondStoreError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
