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

	cancelBookingHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/create_booking"
	deleteShiftHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/delete_shift"
	facilityScheduleHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/facility_schedule"
	getAvailabilityHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/get_booking"
	getShiftsHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/get_shifts"
	getSpecialistBookingsHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/get_specialist_bookings"
	materializeScheduleHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/materialize_schedule"
	rescheduleBookingHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/reschedule_booking"
	saveShiftHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/save_shift"
	updateBookingStatusHandler "github.com/velara/FMC-SchedulingService/internal/api/handlers/update_booking_status"
	"github.com/velara/FMC-SchedulingService/internal/api/middleware"
	"github.com/velara/FMC-SchedulingService/internal/config"
	availabilityCache "github.com/velara/FMC-SchedulingService/internal/infra/cache/availability"
	bookingRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/booking"
	facilityRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/facility"
	shiftRepo "github.com/velara/FMC-SchedulingService/internal/infra/storage/shift"
	catalogServiceClient "github.com/velara/FMC-SchedulingService/internal/integrations/catalogservice"
	bookingsService "github.com/velara/FMC-SchedulingService/internal/service/bookings"
	scheduleService "github.com/velara/FMC-SchedulingService/internal/service/schedule"
	commitBookingUC "github.com/velara/FMC-SchedulingService/internal/usecase/commit_booking"
	getAvailabilityUC "github.com/velara/FMC-SchedulingService/internal/usecase/get_availability"
	materializeScheduleUC "github.com/velara/FMC-SchedulingService/internal/usecase/materialize_schedule"
	saveShiftUC "github.com/velara/FMC-SchedulingService/internal/usecase/save_shift"
	"github.com/velara/FMC-SchedulingService/pkg/dbmetrics"
	"github.com/velara/FMC-SchedulingService/pkg/logger"
	"github.com/velara/FMC-SchedulingService/pkg/metrics"
	"github.com/velara/FMC-SchedulingService/pkg/simpletxmanager"
	"github.com/velara/FMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting FMC-SchedulingService...")
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

	// Инициализируем клиента каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog service client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		shiftRepository    *shiftRepo.Repository
		facilityRepository *facilityRepo.Repository
		bookingRepository  *bookingRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		shiftRepository = shiftRepo.NewRepository(wrappedDB)
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		shiftRepository = shiftRepo.NewRepository(db)
		facilityRepository = facilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кэш доступности: инвалидируется при любой записи в расписание
	cache := availabilityCache.NewCache()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		cache,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		shiftRepository,
		facilityRepository,
		cache,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		shiftRepository,
		facilityRepository,
		bookingRepository,
		catalogClient,
		cache,
		log,
	)
	saveShiftUseCase := saveShiftUC.NewUseCase(
		shiftRepository,
		txMgr,
		cache,
		log,
	)
	commitBookingUseCase := commitBookingUC.NewUseCase(
		shiftRepository,
		facilityRepository,
		bookingRepository,
		catalogClient,
		txMgr,
		cache,
		log,
	)
	materializeScheduleUseCase := materializeScheduleUC.NewUseCase(
		shiftRepository,
		txMgr,
		cache,
		&materializeScheduleUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getShifts := getShiftsHandler.NewHandler(scheduleSvc, log)
	saveShift := saveShiftHandler.NewHandler(saveShiftUseCase, log)
	deleteShift := deleteShiftHandler.NewHandler(scheduleSvc, log)
	materializeSchedule := materializeScheduleHandler.NewHandler(materializeScheduleUseCase, log)
	createBooking := createBookingHandler.NewHandler(commitBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(commitBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getSpecialistBookings := getSpecialistBookingsHandler.NewHandler(bookingSvc, log)
	facilitySchedule := facilityScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты специалиста на дату
	api.HandleFunc("/specialists/{specialistId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Расписание заведения и сетка слотов
	api.HandleFunc("/facility/schedule", facilitySchedule.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Смены специалистов ---
	protected.HandleFunc("/specialists/{specialistId}/shifts", getShifts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/specialists/{specialistId}/shifts", saveShift.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/shifts/{shiftId}", saveShift.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/shifts/{shiftId}", deleteShift.Handle).Methods(http.MethodDelete)

	// Материализация недельного шаблона в явные смены
	protected.HandleFunc("/specialists/{specialistId}/schedule/materialize",
		materializeSchedule.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/specialists/{specialistId}/bookings",
		getSpecialistBookings.Handle).Methods(http.MethodGet)

	// --- Расписание заведения ---
	protected.HandleFunc("/facility/schedule", facilitySchedule.HandleUpdate).Methods(http.MethodPut)

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
