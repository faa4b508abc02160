package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomcast-service/internal/infrastructure/config"
	"roomcast-service/internal/infrastructure/persistence"
	"roomcast-service/internal/interface/handler"
	"roomcast-service/internal/interface/repository"
	"roomcast-service/internal/usecase"
	"roomcast-service/pkg/logger"
	"roomcast-service/pkg/metrics"
	"roomcast-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Roomcast Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up MongoDB connection for the booking-event archive
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up Redis for the per-room hold locks
	redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}

	// Set up repositories
	reservationRepo := repository.NewGormReservationRepository(gormDB)
	roomRepo := repository.NewGormRoomRepository(gormDB)
	ruleRepo := repository.NewGormRateRuleRepository(gormDB)
	serviceRepo := repository.NewGormServiceUsageRepository(gormDB)
	eventRepo := repository.NewMongoBookingEventRepository(db)
	notifier := repository.NewHTTPNotificationRepository(cfg.NotifyEndpoint, cfg.NotifyToken, log)
	locker := repository.NewRedisRoomLocker(redisClient, log)

	// Set up services
	m := metrics.NewMetrics("roomcast")
	clock := utils.RealClock{}
	pricing := usecase.NewPricingService(ruleRepo, roomRepo, log)
	settlement := usecase.NewSettlementCalculator(pricing, cfg.CheckoutHour, cfg.LateFeeRate, log)
	availability := usecase.NewAvailabilityService(reservationRepo, roomRepo, log)
	booking := usecase.NewBookingService(
		reservationRepo, roomRepo, serviceRepo, eventRepo, notifier, locker,
		pricing, settlement, m, clock, log, cfg.DepositRate, cfg.HoldLockTTL,
	)

	// Start the expired-hold reaper in a goroutine
	reaper := usecase.NewHoldReaper(reservationRepo, eventRepo, m, clock, log, cfg.HoldGraceWindow, cfg.ReaperInterval)
	go reaper.Run(ctx)

	// Set up HTTP server for the API and metrics
	mux := http.NewServeMux()
	handler.NewBookingHandler(booking, availability, pricing, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB and Redis
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", "error", err)
	}

	log.Info("Roomcast Service stopped")
}
