package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	cancelBookingHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_booking"
	getCancellationQuoteHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_cancellation_quote"
	getModeHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_mode"
	getStatsHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_stats"
	listBookingsHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/list_bookings"
	listStylistsHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/list_stylists"
	registerEscrowHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/register_escrow"
	resetSessionHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/reset_session"
	updateModeHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/update_mode"
	updateStatusHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/update_status"
	"github.com/m04kA/SMC-BookingLifecycle/internal/api/middleware"
	"github.com/m04kA/SMC-BookingLifecycle/internal/config"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/integrations/lifecycleapi"
	"github.com/m04kA/SMC-BookingLifecycle/internal/integrations/simulated"
	bookingsService "github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/metrics"
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

	log.Info("Starting SMC-BookingLifecycle...")
	log.Info("Configuration loaded from config.toml (simulated=%t)", cfg.Simulated.Enabled)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Конфиг уже провалидирован, ошибки здесь невозможны
	slotConfig, _ := cfg.Scheduling.SlotConfig()
	location, _ := cfg.Scheduling.Location()

	// Инициализируем источники данных
	lifecycleClient := lifecycleapi.NewClient(
		cfg.LifecycleAPI.URL,
		time.Duration(cfg.LifecycleAPI.Timeout)*time.Second,
		log,
		lifecycleapi.WithRateLimit(cfg.LifecycleAPI.RateLimit, cfg.LifecycleAPI.RateBurst),
		lifecycleapi.WithMetrics(metricsCollector),
	)
	simulatedProvider := simulated.NewProvider(simulated.Config{
		Seed:               cfg.Simulated.Seed,
		Stylists:           cfg.Simulated.Stylists,
		ServicesPerStylist: cfg.Simulated.ServicesPerStylist,
		BookingsPerActor:   cfg.Simulated.BookingsPerActor,
		Latency:            cfg.Simulated.Latency(),
		Slots:              slotConfig,
		Location:           location,
	}, nil, log)
	log.Info("Data sources initialized (LifecycleAPI=%s timeout=%ds, simulated stylists=%d)",
		cfg.LifecycleAPI.URL, cfg.LifecycleAPI.Timeout, cfg.Simulated.Stylists)

	mode := config.NewMode(cfg.Simulated.Enabled)

	// Инициализируем хранилище и use cases
	bookingStore := bookingsService.NewStore(
		lifecycleClient,
		simulatedProvider,
		mode,
		log,
		bookingsService.WithPageSize(cfg.Store.PageSize),
		bookingsService.WithMetrics(metricsCollector),
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		lifecycleClient,
		simulatedProvider,
		mode,
		slotConfig,
		location,
		metricsCollector,
		log,
	)

	if cfg.Store.WarmUp {
		warmUp(bookingStore, cfg, log)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(bookingStore, log)
	listBookings := listBookingsHandler.NewHandler(bookingStore, log)
	getBooking := getBookingHandler.NewHandler(bookingStore, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingStore, log)
	confirmPayment := confirmPaymentHandler.NewHandler(bookingStore, log)
	updateStatus := updateStatusHandler.NewHandler(bookingStore, log)
	getStats := getStatsHandler.NewHandler(bookingStore, log)
	getCancellationQuote := getCancellationQuoteHandler.NewHandler(bookingStore, log)
	resetSession := resetSessionHandler.NewHandler(bookingStore, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getMode := getModeHandler.NewHandler(mode, log)
	updateMode := updateModeHandler.NewHandler(mode, log)
	listStylists := listStylistsHandler.NewHandler(simulatedProvider, log)
	registerEscrow := registerEscrowHandler.NewHandler(simulatedProvider, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Текущий режим данных и его переключение
	api.HandleFunc("/mode", getMode.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mode", updateMode.Handle).Methods(http.MethodPut)

	// Выход из аккаунта
	api.HandleFunc("/session", resetSession.Handle).Methods(http.MethodDelete)

	// Демо-режим: каталог мастеров и блокировка расчета перед confirm-payment
	api.HandleFunc("/simulated/stylists", listStylists.Handle).Methods(http.MethodGet)
	api.HandleFunc("/simulated/escrows", registerEscrow.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization и X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// stats регистрируется раньше {bookingId}, иначе mux примет его за ID
	protected.HandleFunc("/bookings/stats", getStats.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancellation-quote", getCancellationQuote.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm-payment", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// --- Мастера ---
	protected.HandleFunc("/stylists/{stylistId}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

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

// warmUp параллельно загружает первую страницу и статистику для пользователя из конфига
func warmUp(store *bookingsService.Store, cfg *config.Config, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.LifecycleAPI.Timeout)*time.Second,
	)
	defer cancel()

	ctx = domain.WithActor(ctx, domain.Actor{
		ID:    cfg.Store.WarmUpUserID,
		Token: cfg.LifecycleAPI.Token,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.FetchList(gctx, true)
	})
	g.Go(func() error {
		store.FetchStats(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Warn("Warm-up failed, cache will be filled on first request: %v", err)
		return
	}

	state := store.State()
	log.Info("Warm-up done: bookings=%d, total=%d", len(state.Bookings), state.Total)
}
