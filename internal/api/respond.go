package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daytrack/internal/store"
)

// respondStoreError maps store errors onto the wire: malformed id → 400,
// no match → 404, store not configured → 503, anything else → 500 with the
// underlying message passed through.
func respondStoreError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// filterPatch keeps only the allowed keys that were actually present in the
// request body. An explicit null survives as a nil value and clears the
// field; absent keys are left out entirely so the patch stays partial.
func filterPatch(body map[string]any, allowed ...string) store.Document {
	patch := store.Document{}
	for _, key := range allowed {
		if v, ok := body[key]; ok {
			patch[key] = v
		}
	}
	return patch
}

func serializeAll(docs []store.Document) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, store.Serialize(doc))
	}
	return out
}
