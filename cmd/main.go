package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelHoldHandler "github.com/courtify/CourtBookingService/internal/api/handlers/cancel_hold"
	createBookingHandler "github.com/courtify/CourtBookingService/internal/api/handlers/create_booking"
	createHoldHandler "github.com/courtify/CourtBookingService/internal/api/handlers/create_hold"
	createOfflineBlockHandler "github.com/courtify/CourtBookingService/internal/api/handlers/create_offline_block"
	getAvailableSlotsHandler "github.com/courtify/CourtBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/courtify/CourtBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/courtify/CourtBookingService/internal/api/handlers/get_user_bookings"
	getVenueHandler "github.com/courtify/CourtBookingService/internal/api/handlers/get_venue"
	getVenueBookingsHandler "github.com/courtify/CourtBookingService/internal/api/handlers/get_venue_bookings"
	"github.com/courtify/CourtBookingService/internal/api/middleware"
	"github.com/courtify/CourtBookingService/internal/config"
	"github.com/courtify/CourtBookingService/internal/infra/outbox"
	bookingRepo "github.com/courtify/CourtBookingService/internal/infra/storage/booking"
	holdRepo "github.com/courtify/CourtBookingService/internal/infra/storage/hold"
	offlineBlockRepo "github.com/courtify/CourtBookingService/internal/infra/storage/offlineblock"
	slotLockRepo "github.com/courtify/CourtBookingService/internal/infra/storage/slotlock"
	venueRepo "github.com/courtify/CourtBookingService/internal/infra/storage/venue"
	notifyServiceClient "github.com/courtify/CourtBookingService/internal/integrations/notifyservice"
	availabilityService "github.com/courtify/CourtBookingService/internal/service/availability"
	bookingsService "github.com/courtify/CourtBookingService/internal/service/bookings"
	holdsService "github.com/courtify/CourtBookingService/internal/service/holds"
	venuesService "github.com/courtify/CourtBookingService/internal/service/venues"
	createBookingUC "github.com/courtify/CourtBookingService/internal/usecase/create_booking"
	createHoldUC "github.com/courtify/CourtBookingService/internal/usecase/create_hold"
	getAvailableSlotsUC "github.com/courtify/CourtBookingService/internal/usecase/get_available_slots"
	"github.com/courtify/CourtBookingService/pkg/dbmetrics"
	"github.com/courtify/CourtBookingService/pkg/logger"
	"github.com/courtify/CourtBookingService/pkg/metrics"
	"github.com/courtify/CourtBookingService/pkg/simpletxmanager"
	"github.com/courtify/CourtBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CourtBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notify service client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		venueRepository        *venueRepo.Repository
		bookingRepository      *bookingRepo.Repository
		holdRepository         *holdRepo.Repository
		slotLockRepository     *slotLockRepo.Repository
		offlineBlockRepository *offlineBlockRepo.Repository
		outboxRepository       *outbox.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		venueRepository = venueRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		slotLockRepository = slotLockRepo.NewRepository(wrappedDB)
		offlineBlockRepository = offlineBlockRepo.NewRepository(wrappedDB)
		outboxRepository = outbox.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		venueRepository = venueRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		slotLockRepository = slotLockRepo.NewRepository(db)
		offlineBlockRepository = offlineBlockRepo.NewRepository(db)
		outboxRepository = outbox.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		bookingRepository,
		holdRepository,
		offlineBlockRepository,
	)
	bookingsSvc := bookingsService.NewService(bookingRepository, log)
	holdsSvc := holdsService.NewService(holdRepository, txMgr, log)
	venuesSvc := venuesService.NewService(venueRepository, offlineBlockRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		venueRepository,
		availabilitySvc,
		log,
	)
	createHoldUseCase := createHoldUC.NewUseCase(
		venueRepository,
		holdRepository,
		slotLockRepository,
		availabilitySvc,
		outboxRepository,
		txMgr,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		holdRepository,
		bookingRepository,
		availabilitySvc,
		outboxRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getVenue := getVenueHandler.NewHandler(venuesSvc, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	cancelHold := cancelHoldHandler.NewHandler(holdsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingsSvc, log)
	createOfflineBlock := createOfflineBlockHandler.NewHandler(venuesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	// Rate limiting публичных ручек (если настроен redis)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := middleware.NewRateLimiter(
			rdb,
			cfg.Redis.RateLimit,
			time.Duration(cfg.Redis.RateWindowSec)*time.Second,
			log,
		)
		public.Use(limiter.Middleware)
		log.Info("Redis rate limiter enabled (addr=%s, limit=%d/%ds)",
			cfg.Redis.Addr, cfg.Redis.RateLimit, cfg.Redis.RateWindowSec)
	}

	// Свободные слоты площадки
	public.HandleFunc("/venues/{venueId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Площадка с расписанием
	public.HandleFunc("/venues/{venueId}", getVenue.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервы (holds) ---
	// Создание hold
	protected.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)

	// Досрочное освобождение hold
	protected.HandleFunc("/holds/{holdId}", cancelHold.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Промоутинг hold в бронирование
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Административная блокировка интервала
	protected.HandleFunc("/venues/{venueId}/offline", createOfflineBlock.Handle).Methods(http.MethodPost)

	// Запускаем outbox publisher (если настроен kafka)
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()

	if cfg.Kafka.Brokers != "" {
		publisher := outbox.NewPublisher(outboxRepository, log, outbox.PublisherConfig{
			Brokers:   cfg.Kafka.Brokers,
			PollEvery: time.Duration(cfg.Kafka.PollEverySec) * time.Second,
			BatchSize: cfg.Kafka.BatchSize,
		})
		go publisher.Run(publisherCtx)
		log.Info("Outbox publisher started (brokers=%s)", cfg.Kafka.Brokers)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем публикацию событий
	stopPublisher()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
