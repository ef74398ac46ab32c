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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/glkernel/internal/adapter/http"
	"github.com/iho/glkernel/internal/adapter/http/handler"
	"github.com/iho/glkernel/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/glkernel/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/glkernel/internal/adapter/repository/redis"
	"github.com/iho/glkernel/internal/infrastructure/config"
	"github.com/iho/glkernel/internal/infrastructure/dispatcher"
	"github.com/iho/glkernel/internal/infrastructure/logger"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/infrastructure/postgres"
	"github.com/iho/glkernel/internal/infrastructure/redis"
	"github.com/iho/glkernel/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.NewWithRegisterer(prometheus.DefaultRegisterer)
	if err := m.RegisterRedis(redisClient); err != nil {
		log.Warn().Err(err).Msg("redis pool metrics not registered")
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	outbox := postgresRepo.NewOutboxRepository(pool)
	ledgers := postgresRepo.NewLedgerRepository(pool)
	periods := postgresRepo.NewPeriodRepository(pool)
	postedLines := postgresRepo.NewPostedLineRepository(pool)
	mappings := redisRepo.NewMappingCache(postgresRepo.NewMappingRepository(pool), redisClient, cfg.MappingCacheTTL, log, m)

	// Initialize use cases
	derivationUC := usecase.NewDerivationUseCase(txManager, postgresRepo.NewEventRepository(pool), mappings, outbox, idGen, log, m).WithRetrier(retrier)
	mappingUC := usecase.NewMappingUseCase(txManager, mappings, outbox, idGen, log, m).WithRetrier(retrier)
	periodUC := usecase.NewPeriodUseCase(txManager, ledgers, periods, outbox, idGen, log, m).WithRetrier(retrier)
	journalUC := usecase.NewJournalUseCase(txManager, ledgers, periods, outbox, idGen, log, m).WithRetrier(retrier)
	coaUC := usecase.NewCoAUseCase(txManager, postgresRepo.NewCoARepository(pool), outbox, idGen, log, m).WithRetrier(retrier)
	numberingUC := usecase.NewNumberingUseCase(txManager, postgresRepo.NewSequenceRepository(pool),
		postgresRepo.NewDimensionRepository(pool), cfg.NumberingUtilizationWarn, log, m).WithRetrier(retrier)
	reportUC := usecase.NewReportUseCase(ledgers, postedLines)

	limiter := newRateLimiter(cfg)
	if limiter != nil {
		go cleanupLimiters(ctx, limiter, log)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		DerivationHandler: handler.NewDerivationHandler(derivationUC),
		MappingHandler:    handler.NewMappingHandler(mappingUC),
		PeriodHandler:     handler.NewPeriodHandler(periodUC),
		JournalHandler:    handler.NewJournalHandler(journalUC),
		CoAHandler:        handler.NewCoAHandler(coaUC),
		ReportHandler:     handler.NewReportHandler(reportUC),
		NumberingHandler:  handler.NewNumberingHandler(numberingUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  redisRepo.NewIdempotencyStore(redisClient, m),
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       limiter,
		Metrics:           m,
		MetricsHandler:    promhttp.Handler(),
		Logger:            log,
	})

	// Command dispatcher
	publishers := dispatcher.Chain{
		dispatcher.NewLogPublisher(log),
		postgresRepo.NewJournalPoster(txManager, postedLines, cfg.PostingDefaultLedger, log),
	}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := dispatcher.NewSyncProducer(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer producer.Close()
		publishers = append(publishers, dispatcher.NewKafkaPublisher(producer, cfg.KafkaCommandTopic))
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaCommandTopic).Msg("publishing commands to kafka")
	}

	d := dispatcher.New(dispatcher.Config{
		Outbox:    outbox,
		Publisher: publishers,
		Dedupe:    redisRepo.NewCommandDedupe(redisClient, cfg.CommandDedupeTTL, cfg.CommandDedupeLease, m),
		Logger:    log,
		Metrics:   m,
		BatchSize: cfg.OutboxBatchSize,
		Interval:  cfg.OutboxInterval,
		Retention: cfg.OutboxRetention,
	})

	dispatcherDone := make(chan error, 1)
	go func() {
		dispatcherDone <- d.Start(ctx)
	}()

	server := &http.Server{
		Addr:         serverAddr(cfg),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	case err := <-serverErr:
		stop()
		return fmt.Errorf("listen: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if err := <-dispatcherDone; err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("dispatcher stopped with error")
	}

	log.Info().Msg("server stopped")
	return nil
}

func serverAddr(cfg *config.Config) string {
	return fmt.Sprintf(":%s", cfg.HTTPPort)
}

// newRateLimiter returns nil when limiting is disabled.
func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.HTTPRateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.HTTPRateLimitRPS, cfg.HTTPRateLimitBurst)
}

// limiterCleanupInterval is how often idle rate limiters are dropped.
const limiterCleanupInterval = 10 * time.Minute

func cleanupLimiters(ctx context.Context, limiter *middleware.RateLimiter, log zerolog.Logger) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining := limiter.Cleanup(limiterCleanupInterval)
			log.Debug().Int("clients", remaining).Msg("rate limiters cleaned up")
		}
	}
}
