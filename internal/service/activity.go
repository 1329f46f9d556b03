package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"daytrack/internal/store"
	"daytrack/pkg/metrics"
)

const (
	ActivityTaskCreated = "task_created"
	ActivityTaskUpdated = "task_updated"
	ActivityTaskDeleted = "task_deleted"
	ActivityWorkLogged  = "work_logged"
)

// ActivityLogger appends human-readable audit entries as a side effect of
// task and worklog writes. Entries are append-only; the API never updates or
// deletes them.
type ActivityLogger struct {
	store  store.Store
	logger *zap.Logger
}

func NewActivityLogger(st store.Store, logger *zap.Logger) *ActivityLogger {
	return &ActivityLogger{store: st, logger: logger}
}

// Log writes one activity record. It runs inline with the triggering request
// but is best-effort: a failed insert is logged and swallowed so the primary
// write still reports success.
func (l *ActivityLogger) Log(ctx context.Context, activityType, message, relatedID string) {
	if l.store == nil {
		return
	}

	doc := store.Document{
		"type":       activityType,
		"message":    message,
		"related_id": relatedID,
		"created_at": time.Now().UTC(),
	}
	if _, err := l.store.InsertOne(ctx, store.CollectionActivity, doc); err != nil {
		l.logger.Warn("Failed to append activity record",
			zap.String("type", activityType),
			zap.String("related_id", relatedID),
			zap.Error(err),
		)
		return
	}

	metrics.IncrementActivityLogged(activityType)
}
