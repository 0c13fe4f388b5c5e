package di

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/wire"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lmittmann/tint"

	"github.com/rinkdesk/backend/internal/auth"
	"github.com/rinkdesk/backend/internal/config"
	"github.com/rinkdesk/backend/internal/dispatcher"
	"github.com/rinkdesk/backend/internal/domain"
	"github.com/rinkdesk/backend/internal/handler"
	"github.com/rinkdesk/backend/internal/middleware"
	"github.com/rinkdesk/backend/internal/push"
	"github.com/rinkdesk/backend/internal/repository"
	"github.com/rinkdesk/backend/internal/server"
	"github.com/rinkdesk/backend/internal/service"
)

var ConfigSet = wire.NewSet(
	config.Load,
)

var LoggerSet = wire.NewSet(
	ProvideLogger,
)

var DatabaseSet = wire.NewSet(
	ProvideDatabase,
)

var RepositorySet = wire.NewSet(
	repository.NewPostgresSessionRepository,
	wire.Bind(new(domain.SessionRepository), new(*repository.PostgresSessionRepository)),
	repository.NewPostgresSubscriptionRepository,
	wire.Bind(new(domain.SubscriptionRepository), new(*repository.PostgresSubscriptionRepository)),
	repository.NewPostgresUserRepository,
	wire.Bind(new(domain.UserRepository), new(*repository.PostgresUserRepository)),
)

var AuthSet = wire.NewSet(
	ProvideTokenManager,
	middleware.NewAuthMiddleware,
)

var ServiceSet = wire.NewSet(
	service.NewSessionService,
	service.NewAnalyticsService,
)

var DispatcherSet = wire.NewSet(
	ProvidePushSender,
	ProvideSweepConfig,
	dispatcher.New,
)

var HandlerSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewAuthHandler,
	handler.NewSessionHandler,
	handler.NewAnalyticsHandler,
	handler.NewNotificationHandler,
)

var ServerSet = wire.NewSet(
	ProvideServerConfig,
	server.New,
)

var AppSet = wire.NewSet(
	ConfigSet,
	LoggerSet,
	DatabaseSet,
	RepositorySet,
	AuthSet,
	ServiceSet,
	DispatcherSet,
	HandlerSet,
	ServerSet,
	wire.Struct(new(Application), "*"),
)

const Version = "0.1.0"

func ProvideHealthHandler() *handler.HealthHandler {
	return handler.NewHealthHandler(Version)
}

func ProvideLogger(cfg *config.Config) *slog.Logger {
	var logLevel slog.Level
	switch cfg.Server.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var h slog.Handler
	if cfg.Server.Env == "development" {
		h = tint.NewHandler(os.Stdout, &tint.Options{Level: logLevel})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	return slog.New(h)
}

func ProvideDatabase(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup, nil
}

func ProvideTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func ProvidePushSender(cfg *config.Config) push.Sender {
	return push.NewWebPushSender(push.Config{
		VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
		Subscriber:      cfg.Push.Subscriber,
	})
}

func ProvideSweepConfig(cfg *config.Config) dispatcher.Config {
	return dispatcher.Config{
		Interval: cfg.Sweep.Interval,
		LinkURL:  cfg.Sweep.LinkURL,
	}
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		CorsOrigins:  cfg.Server.CorsOrigins,
	}
}

type Application struct {
	Config              *config.Config
	Logger              *slog.Logger
	DB                  *sql.DB
	UserRepo            domain.UserRepository
	AuthMiddleware      *middleware.AuthMiddleware
	Sweeper             *dispatcher.Sweeper
	Server              *server.Server
	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	SessionHandler      *handler.SessionHandler
	AnalyticsHandler    *handler.AnalyticsHandler
	NotificationHandler *handler.NotificationHandler
}
