package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daytrack/internal/model"
	"daytrack/internal/store"
)

// NoteHandler implements notes CRUD. Unlike tasks and worklogs, note writes
// do not produce activity records.
type NoteHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewNoteHandler(st store.Store, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{store: st, logger: logger}
}

// List handles GET /api/notes.
func (h *NoteHandler) List(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, model.DemoNotes())
		return
	}

	docs, err := h.store.Find(c.Request.Context(), store.CollectionNote, nil)
	if err != nil {
		h.logger.Warn("ListNotes: store query failed, serving demo data", zap.Error(err))
		c.JSON(http.StatusOK, model.DemoNotes())
		return
	}

	c.JSON(http.StatusOK, serializeAll(docs))
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(c *gin.Context) {
	var payload model.NotePayload
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

	id, err := h.store.InsertOne(c.Request.Context(), store.CollectionNote, payload.Document(time.Now().UTC()))
	if err != nil {
		h.logger.Error("CreateNote: insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Update handles PUT /api/notes/:id with partial-patch semantics.
func (h *NoteHandler) Update(c *gin.Context) {
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

	patch := filterPatch(body, "title", "content", "pinned")
	patch["updated_at"] = time.Now().UTC()

	doc, err := h.store.FindOneAndUpdate(c.Request.Context(), store.CollectionNote, id, patch)
	if err != nil {
		h.logger.Warn("UpdateNote: update failed", zap.String("note_id", id), zap.Error(err))
		respondStoreError(c, err, "Note not found")
		return
	}

	c.JSON(http.StatusOK, store.Serialize(doc))
}

// Delete handles DELETE /api/notes/:id.
func (h *NoteHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	if _, err := h.store.FindOneAndDelete(c.Request.Context(), store.CollectionNote, id); err != nil {
		h.logger.Warn("DeleteNote: delete failed", zap.String("note_id", id), zap.Error(err))
		respondStoreError(c, err, "Note not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
