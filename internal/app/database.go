package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doctrkr-backend/internal/config"
)

// OpenDatabase connects to PostgreSQL, starting the embedded server first
// when cfg.Embedded is set, and applies migrations unless SkipMigrations is set.
// The returned close func releases everything that was opened.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, func(), error) {
	var emb *postgres.EmbeddedServer
	stopEmbedded := func() {
		if emb == nil {
			return
		}
		if err := emb.Stop(); err != nil {
			logger.Error("embedded postgres stop failed", slog.String("error", err.Error()))
		}
	}

	if cfg.Embedded {
		var err error
		if emb, err = postgres.StartEmbedded(cfg, logger); err != nil {
			return nil, nil, err
		}
		cfg.DSN = emb.DSN()
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		stopEmbedded()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	closeAll := func() {
		pool.Close()
		stopEmbedded()
	}

	if !cfg.SkipMigrations {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return pool, closeAll, nil
}
