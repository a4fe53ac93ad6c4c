package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/config"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/attendancestats"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	appHTTP "github.com/cmlabs-hris/stamp-request-go/internal/handler/http"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/cache"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/database"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/events"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/logger"
	"github.com/cmlabs-hris/stamp-request-go/internal/repository/memory"
	"github.com/cmlabs-hris/stamp-request-go/internal/repository/postgresql"
	statsService "github.com/cmlabs-hris/stamp-request-go/internal/service/attendancestats"
	clockEntryService "github.com/cmlabs-hris/stamp-request-go/internal/service/clockentry"
	stampRequestService "github.com/cmlabs-hris/stamp-request-go/internal/service/stamprequest"
	"go.uber.org/zap"
)

type storage struct {
	entries  clockentry.ClockEntryRepository
	requests stamprequest.StampRequestRepository
	tx       stamprequest.Transactor
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat, Env: cfg.App.Env})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	var statsCache attendancestats.StatsCache = cache.NoopStatsCache{}
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		statsCache = cache.NewRedisStatsCache(client, cfg.Redis.Prefix, cfg.Redis.StatsCacheTTL)
		log.Info("redis stats cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var publisher stampRequestService.EventPublisher = events.NoopPublisher{Logger: log}
	if cfg.RabbitMQ.Enabled {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			return err
		}
		defer p.Close()
		publisher = p
		log.Info("rabbitmq publisher enabled", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	stampRequestSvc := stampRequestService.NewStampRequestService(store.requests, store.entries, store.tx, log, stampRequestService.Options{
		BulkMaxIDs:      cfg.Bulk.MaxIDs,
		BulkConcurrency: cfg.Bulk.Concurrency,
	})
	propagator := stampRequestService.NewChangePropagator(statsCache, publisher, log)
	clockEntrySvc := clockEntryService.NewClockEntryService(store.entries)
	statsSvc := statsService.NewStatsService(store.entries, statsCache, log)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{AllowedOrigins: cfg.App.CORSAllowedOrigins, Env: cfg.App.Env},
		JWTService,
		appHTTP.Handlers{
			StampRequest:    appHTTP.NewStampRequestHandler(stampRequestSvc, propagator),
			ClockEntry:      appHTTP.NewClockEntryHandler(clockEntrySvc),
			AttendanceStats: appHTTP.NewAttendanceStatsHandler(statsSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr), zap.String("storage", cfg.App.StorageDriver))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage, error) {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore()
		log.Warn("using in-memory storage, data is lost on restart")
		return storage{
			entries:  memory.NewClockEntryRepository(store),
			requests: memory.NewStampRequestRepository(store),
			tx:       store,
			close:    func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, database.Config{
		DSN:      cfg.DatabaseURL(),
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return storage{}, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return storage{}, err
		}
		log.Info("database schema applied")
	}

	return storage{
		entries:  postgresql.NewClockEntryRepository(db),
		requests: postgresql.NewStampRequestRepository(db),
		tx:       postgresql.NewTransactor(db),
		close:    db.Close,
	}, nil
}
