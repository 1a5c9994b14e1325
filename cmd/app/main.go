package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airbooking-web/api"
	"github.com/Domenick1991/airbooking-web/config"
	"github.com/Domenick1991/airbooking-web/internal/backend"
	"github.com/Domenick1991/airbooking-web/internal/bootstrap"
	"github.com/Domenick1991/airbooking-web/internal/gate"
	"github.com/Domenick1991/airbooking-web/internal/kafka"
	"github.com/Domenick1991/airbooking-web/internal/logging"
	"github.com/Domenick1991/airbooking-web/internal/service/auth"
	"github.com/Domenick1991/airbooking-web/internal/service/booking"
	"github.com/Domenick1991/airbooking-web/internal/service/flights"
	"github.com/Domenick1991/airbooking-web/internal/service/results"
	"github.com/Domenick1991/airbooking-web/internal/session"
	"github.com/Domenick1991/airbooking-web/internal/validate"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultViewIdleTTL = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, checks, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var activity *kafka.Activity
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		activity = kafka.NewActivity(producer, cfg.Kafka.ActivityTopic, logger)
	}

	formatter, err := results.NewFormatter(cfg.Display)
	if err != nil {
		return err
	}
	validator := validate.New()
	client := backend.New(cfg.Backend, logger)

	sessions := session.NewManager(store, logger)
	views := results.NewViews(results.WithIdleTTL(viewIdleTTL(cfg.Session)))
	flightService := flights.NewFlightService(client, views, cfg.Backend.PageSize)
	bookingService := booking.NewBookingService(client, validator, booking.WithActivity(activity))
	authService := auth.NewAuthService(client, validator, activity)

	// A login leaves its old id behind and any logout, including one forced
	// by a 401, ends the session: both drop the results held for it.
	sessions.Subscribe(func(_ context.Context, ev session.Event) {
		switch ev.Kind {
		case session.EventLogin:
			flightService.Forget(ev.PreviousID)
		case session.EventLogout:
			flightService.Forget(ev.SessionID)
		}
	})
	if activity != nil {
		sessions.Subscribe(activity.OnSessionEnd)
	}

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(api.Deps{
		Log:       logger,
		Sessions:  sessions,
		Cookie:    gate.CookieConfig{Name: cfg.HTTP.CookieName, Secure: cfg.HTTP.SecureCookie, TTL: cfg.Session.TTL()},
		Flights:   flightService,
		Bookings:  bookingService,
		Auth:      authService,
		Formatter: formatter,
		Validator: validator,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(ctx, cfg, router, logger, checks...)
}

// viewIdleTTL bounds how long results of an idle session stay in memory.
func viewIdleTTL(cfg config.SessionConfig) time.Duration {
	if ttl := cfg.TTL(); ttl > 0 {
		return ttl
	}
	return defaultViewIdleTTL
}

// openStore builds the configured session store with its health checks.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, []bootstrap.Checker, func(), error) {
	ttl := cfg.Session.TTL()
	switch cfg.Session.Store {
	case config.StoreRedis:
		store := session.NewRedisStore(cfg.Redis, ttl)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, []bootstrap.Checker{store.Ping}, func() { _ = store.Close() }, nil
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := session.NewPostgresStore(pool, ttl)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return store, []bootstrap.Checker{pool.Ping}, pool.Close, nil
	default:
		return session.NewMemoryStore(ttl), nil, func() {}, nil
	}
}
