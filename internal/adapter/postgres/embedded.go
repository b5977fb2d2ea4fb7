package postgres

import (
	"fmt"
	"log/slog"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
)

const (
	embeddedUser     = "postgres"
	embeddedPassword = "postgres"
	embeddedDatabase = "doctrkr"
)

// EmbeddedServer is a PostgreSQL process started by the application itself.
// Intended for local development only.
type EmbeddedServer struct {
	pg  *embeddedpostgres.EmbeddedPostgres
	dsn string
}

// StartEmbedded downloads (on first use) and starts a local PostgreSQL.
func StartEmbedded(cfg config.DatabaseConfig, logger *slog.Logger) (*EmbeddedServer, error) {
	pgCfg := embeddedpostgres.DefaultConfig().
		Port(cfg.EmbeddedPort).
		DataPath(cfg.EmbeddedDataPath).
		Database(embeddedDatabase).
		Username(embeddedUser).
		Password(embeddedPassword)

	pg := embeddedpostgres.NewDatabase(pgCfg)
	if err := pg.Start(); err != nil {
		return nil, fmt.Errorf("start embedded postgres: %w", err)
	}

	logger.Info("embedded postgres started",
		slog.Uint64("port", uint64(cfg.EmbeddedPort)),
		slog.String("data_path", cfg.EmbeddedDataPath),
	)

	return &EmbeddedServer{
		pg: pg,
		dsn: fmt.Sprintf("postgres://%s:%s@localhost:%d/%s?sslmode=disable",
			embeddedUser, embeddedPassword, cfg.EmbeddedPort, embeddedDatabase),
	}, nil
}

// DSN returns the connection string of the running server.
func (s *EmbeddedServer) DSN() string { return s.dsn }

// Stop shuts the server down.
func (s *EmbeddedServer) Stop() error {
	if err := s.pg.Stop(); err != nil {
		return fmt.Errorf("stop embedded postgres: %w", err)
	}
	return nil
}
