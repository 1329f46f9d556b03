package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"daytrack/config"
	"daytrack/internal/api"
	"daytrack/internal/db"
	"daytrack/internal/redis"
	"daytrack/internal/service"
	"daytrack/internal/store"
	"daytrack/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	ctx := context.Background()

	// The database is optional: with no pool the service stays up and the
	// read endpoints serve demo data.
	var documentStore store.Store
	pool := connectDatabase(cfg, log)
	if pool != nil {
		pg := store.NewPostgres(pool, log)
		if err := pg.Migrate(ctx); err != nil {
			log.Warn("Migration failed, running in demo mode", zap.Error(err))
		} else {
			documentStore = pg
		}
	}

	var cache *goredis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(cfg.Redis)
		log.Info("Analytics cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	activityLogger := service.NewActivityLogger(documentStore, log)
	analytics := service.NewAnalytics(documentStore, cache, log)
	seeder := service.NewSeeder(documentStore, log)

	taskHandler := api.NewTaskHandler(documentStore, activityLogger, log)
	worklogHandler := api.NewWorklogHandler(documentStore, activityLogger, log)
	noteHandler := api.NewNoteHandler(documentStore, log)
	activityHandler := api.NewActivityHandler(documentStore, log)
	analyticsHandler := api.NewAnalyticsHandler(analytics, log)
	systemHandler := api.NewSystemHandler(documentStore, seeder, log)

	router := api.NewRouter(
		taskHandler,
		worklogHandler,
		noteHandler,
		activityHandler,
		analyticsHandler,
		systemHandler,
		log,
		pool,
	)

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}

func connectDatabase(cfg *config.Config, log *zap.Logger) *pgxpool.Pool {
	if cfg.DB.Host == "" {
		log.Warn("No database configured, running in demo mode")
		return nil
	}
	pool, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Warn("Database unavailable, running in demo mode", zap.Error(err))
		return nil
	}
	return pool
}
