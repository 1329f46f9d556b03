package model

import (
	"time"

	"github.com/google/uuid"

	"daytrack/internal/store"
)

// Static demo payloads served when the database is unreachable. Read
// endpoints degrade to these instead of failing so the UI stays usable
// without a database.

// DemoWorklogHours is the canonical demo series, newest day first.
var DemoWorklogHours = []float64{6, 7.5, 8, 4, 0, 5, 7}

func DemoTasks(now time.Time) []map[string]any {
	return []map[string]any{
		{
			"id":          "demo1",
			"title":       "Plan the week",
			"description": "Outline top priorities and meetings",
			"status":      StatusInProgress,
			"priority":    PriorityHigh,
			"due_date":    now.UTC().Format(time.RFC3339Nano),
			"tags":        []string{"planning"},
		},
		{
			"id":          "demo2",
			"title":       "Deep work block",
			"description": "Focus on project Alpha",
			"status":      StatusPending,
			"priority":    PriorityMedium,
			"due_date":    nil,
			"tags":        []string{"focus"},
		},
		{
			"id":          "demo3",
			"title":       "Review PRs",
			"description": "Check incoming pull requests",
			"status":      StatusDone,
			"priority":    PriorityLow,
			"due_date":    nil,
			"tags":        []string{"code"},
		},
	}
}

func DemoWorklogs(now time.Time) []map[string]any {
	logs := make([]map[string]any, 0, len(DemoWorklogHours))
	for i, h := range DemoWorklogHours {
		logs = append(logs, store.Serialize(store.Document{
			"_id":     uuid.NewString(),
			"date":    now.AddDate(0, 0, -i),
			"hours":   h,
			"project": "General",
			"notes":   "Demo data",
		}))
	}
	return logs
}

func DemoNotes() []map[string]any {
	return []map[string]any{
		{"id": "n1", "title": "Standup at 9:30", "content": "Share progress and blockers", "pinned": true},
		{"id": "n2", "title": "Follow up", "content": "Email client about contract", "pinned": false},
	}
}

func DemoActivities(now time.Time) []map[string]any {
	return []map[string]any{
		{
			"id":         "a1",
			"type":       "task_completed",
			"message":    "Completed 'Review PRs'",
			"created_at": now.Add(-2 * time.Hour).UTC().Format(time.RFC3339Nano),
		},
		{
			"id":         "a2",
			"type":       "work_logged",
			"message":    "Logged 7.5h",
			"created_at": now.Add(-5 * time.Hour).UTC().Format(time.RFC3339Nano),
		},
		{
			"id":         "a3",
			"type":       "note_added",
			"message":    "Added reminder: Standup at 9:30",
			"created_at": now.AddDate(0, 0, -1).UTC().Format(time.RFC3339Nano),
		},
	}
}
