package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/quickdoc/clinic-api/internal/config"
	"github.com/quickdoc/clinic-api/internal/handler"
	bookingHandler "github.com/quickdoc/clinic-api/internal/handler/booking"
	catalogHandler "github.com/quickdoc/clinic-api/internal/handler/catalog"
	doctorHandler "github.com/quickdoc/clinic-api/internal/handler/doctor"
	ratingHandler "github.com/quickdoc/clinic-api/internal/handler/rating"
	slotHandler "github.com/quickdoc/clinic-api/internal/handler/slot"
	"github.com/quickdoc/clinic-api/internal/middleware"
	"github.com/quickdoc/clinic-api/internal/repository/postgres"
	"github.com/quickdoc/clinic-api/internal/router"
	availabilityService "github.com/quickdoc/clinic-api/internal/service/availability"
	bookingService "github.com/quickdoc/clinic-api/internal/service/booking"
	catalogService "github.com/quickdoc/clinic-api/internal/service/catalog"
	ratingService "github.com/quickdoc/clinic-api/internal/service/rating"
	searchService "github.com/quickdoc/clinic-api/internal/service/search"
	"github.com/quickdoc/clinic-api/pkg/logger"
	"github.com/quickdoc/clinic-api/pkg/messaging/redis"
	"github.com/quickdoc/clinic-api/pkg/metrics"
	"github.com/quickdoc/clinic-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	catalogRepo := postgres.NewCatalogRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	catalogSvc := catalogService.NewService(catalogRepo, cfg.Catalog.CacheTTL, cfg.Catalog.CleanupInterval)
	searchSvc := searchService.NewService(doctorRepo, cfg.Search.MaxResults)
	availabilitySvc := availabilityService.NewService(slotRepo, cfg.Search.SlotLimit)
	bookingSvc := bookingService.NewService(availabilitySvc, appLogger)
	ratingSvc := ratingService.NewService(ratingRepo, doctorRepo, cfg.Search.RatingLimit)

	// Handlers
	h := handler.NewHandler(db)
	catalogH := catalogHandler.NewHandler(catalogSvc)
	doctorH := doctorHandler.NewHandler(searchSvc, catalogSvc, availabilitySvc)
	slotH := slotHandler.NewHandler(availabilitySvc)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	ratingH := ratingHandler.NewHandler(ratingSvc)

	r := router.NewRouter(
		catalogH,
		doctorH,
		slotH,
		bookingH,
		ratingH,
		h,
		router.Config{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORSConfig:     middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Outbox processor publishes booking and rating events for the
	// external notification layer.
	broker, err := redis.NewRedisBroker(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	outboxProcessor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:    cfg.Outbox.BatchSize,
			PollInterval: cfg.Outbox.PollInterval,
			Channel:      cfg.Outbox.Channel,
		},
		appLogger,
		metrics.NewMetrics("clinic_api"),
	)
	go outboxProcessor.Start(workerCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
