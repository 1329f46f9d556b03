package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"daytrack/internal/model"
	"daytrack/internal/store"
)

// Seeder loads a small fixture set so a fresh install has data to render.
type Seeder struct {
	store  store.Store
	logger *zap.Logger
}

func NewSeeder(st store.Store, logger *zap.Logger) *Seeder {
	return &Seeder{store: st, logger: logger}
}

func (s *Seeder) Run(ctx context.Context, now time.Time) error {
	if s.store == nil {
		return store.ErrUnavailable
	}

	yesterday := now.AddDate(0, 0, -1)
	tasks := []store.Document{
		{
			"title":       "Plan the week",
			"description": "Outline priorities",
			"status":      model.StatusInProgress,
			"priority":    model.PriorityHigh,
			"tags":        []string{"planning"},
			"created_at":  now,
			"updated_at":  now,
		},
		{
			"title":       "Deep work block",
			"description": "Project Alpha",
			"status":      model.StatusPending,
			"priority":    model.PriorityMedium,
			"tags":        []string{"focus"},
			"created_at":  now,
			"updated_at":  now,
		},
		{
			"title":       "Review PRs",
			"description": "Check PRs",
			"status":      model.StatusDone,
			"priority":    model.PriorityLow,
			"tags":        []string{"code"},
			"created_at":  yesterday,
			"updated_at":  yesterday,
		},
	}
	if _, err := s.store.InsertMany(ctx, store.CollectionTask, tasks); err != nil {
		return err
	}

	for i, h := range model.DemoWorklogHours {
		worklog := store.Document{
			"date":    now.AddDate(0, 0, -i),
			"hours":   h,
			"project": "General",
			"notes":   "Seed",
		}
		if _, err := s.store.InsertOne(ctx, store.CollectionWorklog, worklog); err != nil {
			return err
		}
	}

	notes := []store.Document{
		{
			"title":      "Standup at 9:30",
			"content":    "Progress & blockers",
			"pinned":     true,
			"created_at": now,
			"updated_at": now,
		},
		{
			"title":      "Follow up",
			"content":    "Email client about contract",
			"pinned":     false,
			"created_at": now,
			"updated_at": now,
		},
	}
	if _, err := s.store.InsertMany(ctx, store.CollectionNote, notes); err != nil {
		return err
	}

	s.logger.Info("Seeded demo fixtures",
		zap.Int("tasks", len(tasks)),
		zap.Int("worklogs", len(model.DemoWorklogHours)),
		zap.Int("notes", len(notes)),
	)
	return nil
}
