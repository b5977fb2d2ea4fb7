// Command cleanup deletes activity log entries older than the retention
// period. It is intended to be invoked by an external cron job.
//
// Usage:
//
//	cleanup [-days=90] [-dry-run]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/activitylog"
	"github.com/heartmarshall/doctrkr-backend/internal/app"
	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/service/activity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	days := flag.Int("days", cfg.Activity.RetentionDays, "delete entries older than this many days")
	dryRun := flag.Bool("dry-run", false, "count matching entries without deleting them")
	flag.Parse()

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, closeDB, err := app.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()

	svc := activity.NewService(logger, activitylog.New(pool))

	deleted, err := svc.Cleanup(ctx, *days, *dryRun)
	if err != nil {
		logger.Error("activity cleanup failed",
			slog.String("error", err.Error()),
			slog.Int("days", *days),
		)
		closeDB()
		os.Exit(1)
	}

	logger.Info("activity cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Int("days", *days),
		slog.Bool("dry_run", *dryRun),
	)
}
