package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres"
	"github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/activitylog"
	analyticsrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/analytics"
	pushrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/push"
	recipientrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/recipient"
	routingrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/routing"
	trackerrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/tracker"
	userrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/doctrkr-backend/internal/adapter/slippdf"
	"github.com/heartmarshall/doctrkr-backend/internal/adapter/storage"
	"github.com/heartmarshall/doctrkr-backend/internal/adapter/webpush"
	"github.com/heartmarshall/doctrkr-backend/internal/auth"
	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/service/activity"
	"github.com/heartmarshall/doctrkr-backend/internal/service/analytics"
	authsvc "github.com/heartmarshall/doctrkr-backend/internal/service/auth"
	"github.com/heartmarshall/doctrkr-backend/internal/service/notify"
	"github.com/heartmarshall/doctrkr-backend/internal/service/push"
	"github.com/heartmarshall/doctrkr-backend/internal/service/recipient"
	"github.com/heartmarshall/doctrkr-backend/internal/service/routing"
	"github.com/heartmarshall/doctrkr-backend/internal/service/slip"
	"github.com/heartmarshall/doctrkr-backend/internal/service/tracker"
	"github.com/heartmarshall/doctrkr-backend/internal/service/user"
	"github.com/heartmarshall/doctrkr-backend/internal/transport/middleware"
	"github.com/heartmarshall/doctrkr-backend/internal/transport/rest"
	"github.com/heartmarshall/doctrkr-backend/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, closeDB, err := OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	server, err := NewServer(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}
	defer server.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      server.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped", slog.Time("at", time.Now()))
	return nil
}

// Server is the fully wired HTTP application on top of an open pool.
type Server struct {
	Handler http.Handler
	closers []func()
}

// Close stops background workers in order and waits for in-flight
// notifications. Call it after the HTTP listener has shut down.
func (s *Server) Close() {
	for _, fn := range s.closers {
		fn()
	}
}

// NewServer builds repositories, services and the HTTP handler tree.
func NewServer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Server, error) {
	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	// Repositories
	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	recipients := recipientrepo.New(pool)
	trackers := trackerrepo.New(pool)
	legs := routingrepo.New(pool)
	activityLogs := activitylog.New(pool)
	stats := analyticsrepo.New(pool)
	subscriptions := pushrepo.New(pool)

	// Services
	hub := ws.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	activityLog := activity.NewLogger(logger, activityLogs)

	pushService := push.NewService(logger, subscriptions, webpush.NewSender(cfg.Push), activityLog, cfg.Push)
	notifyService := notify.NewService(logger, users, hub, pushService)

	authService := authsvc.NewService(logger, users, jwtManager, activityLog, cfg.Auth)
	userService := user.NewService(logger, users, txm, activityLog, cfg.Auth)
	recipientService := recipient.NewService(logger, recipients, activityLog, cfg.Recipients)
	trackerService := tracker.NewService(logger, trackers, legs, files, txm, notifyService, activityLog, cfg.Storage)
	routingService := routing.NewService(logger, legs, trackers, txm, notifyService, activityLog)
	activityService := activity.NewService(logger, activityLogs)
	analyticsService := analytics.NewService(logger, stats, recipients)
	slipService := slip.NewService(logger, trackers, legs, slippdf.NewRenderer(cfg.Public.BaseURL))

	// Transport
	h := handlers{
		health: rest.NewHealthHandler(BuildVersion(),
			rest.Check{Name: "database", Ping: pool.Ping},
			rest.Check{Name: "storage", Ping: files.Ping},
		),
		auth:      rest.NewAuthHandler(authService, logger),
		tracker:   rest.NewTrackerHandler(trackerService, cfg.Storage.MaxUploadBytes, logger),
		routing:   rest.NewRoutingHandler(routingService, logger),
		recipient: rest.NewRecipientHandler(recipientService, logger),
		user:      rest.NewUserHandler(userService, logger),
		activity:  rest.NewActivityHandler(activityService, cfg.Activity.RetentionDays, logger),
		analytics: rest.NewAnalyticsHandler(analyticsService, logger),
		public:    rest.NewPublicHandler(slipService, logger),
		push:      rest.NewPushHandler(pushService, logger),
		ws:        ws.NewHandler(hub, authService, logger, splitList(cfg.CORS.AllowedOrigins)),
	}
	if local, ok := files.(*storage.Local); ok {
		h.uploads = http.FileServer(http.Dir(local.Root()))
	}

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	mux := newRouter(cfg, h, middleware.Auth(authService, logger), rl)

	return &Server{
		Handler: newHandler(cfg, mux, logger),
		closers: []func(){rl.Stop, notifyService.Wait, stopHub},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
