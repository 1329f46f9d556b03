package model

import (
	"errors"
	"time"

	"daytrack/internal/store"
)

// Status and priority are documented value sets, not enforced enums: the UI
// is free to introduce new values, so only presence and ranges are validated.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type TaskPayload struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

func (p *TaskPayload) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

func (p *TaskPayload) Document(now time.Time) store.Document {
	status := p.Status
	if status == "" {
		status = StatusPending
	}
	priority := p.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	doc := store.Document{
		"title":       p.Title,
		"description": nilable(p.Description),
		"status":      status,
		"priority":    priority,
		"due_date":    nilableTime(p.DueDate),
		"tags":        tags,
		"created_at":  now,
		"updated_at":  now,
	}
	return doc
}

type WorklogPayload struct {
	Date    *time.Time `json:"date"`
	Hours   *float64   `json:"hours"`
	Project *string    `json:"project"`
	Notes   *string    `json:"notes"`
}

func (p *WorklogPayload) Validate() error {
	if p.Date == nil {
		return errors.New("date is required")
	}
	if p.Hours == nil {
		return errors.New("hours is required")
	}
	if *p.Hours < 0 || *p.Hours > 24 {
		return errors.New("hours must be between 0 and 24")
	}
	return nil
}

func (p *WorklogPayload) Document(now time.Time) store.Document {
	return store.Document{
		"date":       *p.Date,
		"hours":      *p.Hours,
		"project":    nilable(p.Project),
		"notes":      nilable(p.Notes),
		"created_at": now,
	}
}

type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

func (p *NotePayload) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

func (p *NotePayload) Document(now time.Time) store.Document {
	return store.Document{
		"title":      p.Title,
		"content":    p.Content,
		"pinned":     p.Pinned,
		"created_at": now,
		"updated_at": now,
	}
}

func nilable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nilableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
