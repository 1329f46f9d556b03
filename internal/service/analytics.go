package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"daytrack/internal/model"
	"daytrack/internal/store"
)

const (
	weeklyCacheKey  = "analytics:weekly"
	monthlyCacheKey = "analytics:monthly"
	cacheTTL        = time.Minute
)

type WeeklySummary struct {
	Days           []string  `json:"days"`
	Hours          []float64 `json:"hours"`
	TasksCompleted []int     `json:"tasks_completed"`
}

type WeekBucket struct {
	Label          string  `json:"label"`
	Hours          float64 `json:"hours"`
	TasksCompleted int     `json:"tasks_completed"`
}

type MonthlySummary struct {
	Weeks []WeekBucket `json:"weeks"`
}

// Analytics computes fixed-window summaries of hours logged and tasks
// completed. The cache is optional; with no redis client every call recomputes
// from the store.
type Analytics struct {
	store  store.Store
	cache  *redis.Client
	logger *zap.Logger
}

func NewAnalytics(st store.Store, cache *redis.Client, logger *zap.Logger) *Analytics {
	return &Analytics{store: st, cache: cache, logger: logger}
}

// Weekly buckets the 7 consecutive days ending at now, oldest first. Worklog
// hours are summed per calendar day; done tasks are counted on the day of
// their updated_at (falling back to created_at). When the store is
// unavailable a fixed demo series is synthesized instead.
func (a *Analytics) Weekly(ctx context.Context, now time.Time) (*WeeklySummary, error) {
	if a.store == nil || !a.store.Available(ctx) {
		return demoWeekly(now), nil
	}

	var cached WeeklySummary
	if a.cacheGet(ctx, weeklyCacheKey, &cached) {
		return &cached, nil
	}

	start := dateOnly(now).AddDate(0, 0, -6)
	hours := make([]float64, 7)
	counts := make([]int, 7)

	worklogs, err := a.store.Find(ctx, store.CollectionWorklog, nil)
	if err != nil {
		return nil, err
	}
	for _, wl := range worklogs {
		t, ok := asTime(wl["date"])
		if !ok {
			continue
		}
		if idx := dayIndex(start, t); idx >= 0 && idx < 7 {
			hours[idx] += asFloat(wl["hours"])
		}
	}

	tasks, err := a.store.Find(ctx, store.CollectionTask, store.Filter{"status": model.StatusDone})
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		t, ok := completedAt(task)
		if !ok {
			continue
		}
		if idx := dayIndex(start, t); idx >= 0 && idx < 7 {
			counts[idx]++
		}
	}

	summary := &WeeklySummary{
		Days:           make([]string, 7),
		Hours:          make([]float64, 7),
		TasksCompleted: counts,
	}
	for i := 0; i < 7; i++ {
		summary.Days[i] = start.AddDate(0, 0, i).Format("Mon")
		summary.Hours[i] = round2(hours[i])
	}

	a.cachePut(ctx, weeklyCacheKey, summary)
	return summary, nil
}

// Monthly partitions the 28 days ending at now into 4 consecutive 7-day
// buckets, oldest first. Every day in the window lands in exactly one bucket.
func (a *Analytics) Monthly(ctx context.Context, now time.Time) (*MonthlySummary, error) {
	if a.store == nil || !a.store.Available(ctx) {
		return demoMonthly(), nil
	}

	var cached MonthlySummary
	if a.cacheGet(ctx, monthlyCacheKey, &cached) {
		return &cached, nil
	}

	start := dateOnly(now).AddDate(0, 0, -27)
	hours := make([]float64, 4)
	counts := make([]int, 4)

	worklogs, err := a.store.Find(ctx, store.CollectionWorklog, nil)
	if err != nil {
		return nil, err
	}
	for _, wl := range worklogs {
		t, ok := asTime(wl["date"])
		if !ok {
			continue
		}
		if idx := dayIndex(start, t); idx >= 0 && idx < 28 {
			hours[idx/7] += asFloat(wl["hours"])
		}
	}

	tasks, err := a.store.Find(ctx, store.CollectionTask, store.Filter{"status": model.StatusDone})
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		t, ok := completedAt(task)
		if !ok {
			continue
		}
		if idx := dayIndex(start, t); idx >= 0 && idx < 28 {
			counts[idx/7]++
		}
	}

	summary := &MonthlySummary{Weeks: make([]WeekBucket, 4)}
	for i := 0; i < 4; i++ {
		summary.Weeks[i] = WeekBucket{
			Label:          fmt.Sprintf("W%d", i+1),
			Hours:          round2(hours[i]),
			TasksCompleted: counts[i],
		}
	}

	a.cachePut(ctx, monthlyCacheKey, summary)
	return summary, nil
}

func demoWeekly(now time.Time) *WeeklySummary {
	start := dateOnly(now).AddDate(0, 0, -6)
	summary := &WeeklySummary{
		Days:           make([]string, 7),
		Hours:          make([]float64, 7),
		TasksCompleted: make([]int, 7),
	}
	for i := 0; i < 7; i++ {
		summary.Days[i] = start.AddDate(0, 0, i).Format("Mon")
		summary.Hours[i] = round2(model.DemoWorklogHours[i])
	}
	summary.TasksCompleted[5] = 3
	summary.TasksCompleted[6] = 2
	return summary
}

func demoMonthly() *MonthlySummary {
	summary := &MonthlySummary{Weeks: make([]WeekBucket, 4)}
	for i := 0; i < 4; i++ {
		summary.Weeks[i] = WeekBucket{
			Label:          fmt.Sprintf("W%d", i+1),
			Hours:          float64(32 + 4*i),
			TasksCompleted: 5 + i,
		}
	}
	return summary
}

func (a *Analytics) cacheGet(ctx context.Context, key string, out any) bool {
	if a.cache == nil {
		return false
	}
	data, err := a.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.logger.Warn("Analytics cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (a *Analytics) cachePut(ctx context.Context, key string, v any) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		a.logger.Warn("Analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// completedAt picks the timestamp a done task counts under: updated_at when
// it is a usable timestamp, otherwise created_at.
func completedAt(task store.Document) (time.Time, bool) {
	if t, ok := asTime(task["updated_at"]); ok {
		return t, true
	}
	return asTime(task["created_at"])
}

// asTime accepts time.Time values (memory store) and RFC3339 strings
// (documents read back from JSONB). Anything else is silently excluded from
// aggregation.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func dayIndex(start time.Time, t time.Time) int {
	return int(dateOnly(t).Sub(start).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
