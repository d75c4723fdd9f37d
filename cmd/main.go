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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	blockedDaysHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/blocked_days"
	bookingFeedHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/booking_feed"
	cancelBookingHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/check_availability"
	createBlockHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/create_block"
	createBookingHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_booking"
	getSettingsHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/list_bookings"
	manageBookingHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/manage_booking"
	manageInventoryHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/manage_inventory"
	paymentWebhookHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/payment_webhook"
	updateSettingsHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-RestaurantBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantBooking/internal/config"
	settingsCache "github.com/m04kA/SMC-RestaurantBooking/internal/infra/cache/settings"
	"github.com/m04kA/SMC-RestaurantBooking/internal/infra/changefeed"
	availabilityRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
	closureRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/closure"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
	settingsRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-RestaurantBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-RestaurantBooking/internal/integrations/payment"
	bookingsService "github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings"
	closureService "github.com/m04kA/SMC-RestaurantBooking/internal/service/closure"
	inventoryService "github.com/m04kA/SMC-RestaurantBooking/internal/service/inventory"
	settingsService "github.com/m04kA/SMC-RestaurantBooking/internal/service/settings"
	cancelBookingUC "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/cancel_booking"
	checkAvailabilityUC "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/check_availability"
	createBlockUC "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_block"
	createBookingUC "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/txmanager"
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

	log.Info("Starting SMC-RestaurantBooking...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, log)

	// Redis: кэш настроек и лента изменений (опционально)
	var (
		redisClient *redis.Client
		cache       settingsService.Cache
		feed        *changefeed.Feed
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, cache and change feed may fail: %v", cfg.Redis.Addr, err)
		}
		pingCancel()
		defer redisClient.Close()

		cache = settingsCache.NewCache(redisClient, cfg.Redis.SettingsTTLDuration())
		feed = changefeed.NewFeed(redisClient, cfg.Redis.FeedChannelBase)
		log.Info("Redis enabled (addr=%s, settings_ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SettingsTTL)
	}

	// Получатели уведомлений
	var sinks []notifier.Sink
	if cfg.Notifications.WebhookURL != "" {
		sinks = append(sinks, notifier.NewWebhookSink(cfg.Notifications.WebhookURL,
			time.Duration(cfg.Notifications.Timeout)*time.Second))
	}
	var amqpSink *notifier.AMQPSink
	if cfg.AMQP.Enabled {
		amqpSink = notifier.NewAMQPSink(cfg.AMQP.URL, cfg.AMQP.Queue)
		sinks = append(sinks, amqpSink)
	}
	if feed != nil {
		sinks = append(sinks, notifier.NewFeedSink(feed))
	}

	dispatcher := notifier.NewDispatcher(notifier.Config{
		Workers:     cfg.Notifications.Workers,
		BufferSize:  cfg.Notifications.BufferSize,
		SendTimeout: time.Duration(cfg.Notifications.Timeout) * time.Second,
	}, sinks, metricsCollector, log)
	log.Info("Notification dispatcher started with %d sinks", len(sinks))

	// Платёжный клиент (опционально)
	var (
		checkoutClient createBookingUC.PaymentClient
		refundClient   bookingsService.PaymentClient
	)
	if cfg.Payment.WebhookURL != "" {
		paymentClient := payment.NewClient(
			cfg.Payment.WebhookURL,
			cfg.Payment.RefundURL,
			time.Duration(cfg.Payment.Timeout)*time.Second,
			log,
		)
		checkoutClient = paymentClient
		refundClient = paymentClient
		log.Info("Payment client initialized (url=%s, timeout=%ds)", cfg.Payment.WebhookURL, cfg.Payment.Timeout)
	} else {
		log.Warn("Payment webhook not configured, deposits will await manual confirmation")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	inventoryRepository := inventoryRepo.NewRepository(wrappedDB)
	closureRepository := closureRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cache, txMgr, log)
	closureSvc := closureService.NewService(closureRepository, settingsSvc, dispatcher, location, log)
	inventorySvc := inventoryService.NewService(inventoryRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, inventoryRepository, refundClient, dispatcher, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		checkAvailabilityUC.NewAggregateStrategy(availabilityRepository),
		checkAvailabilityUC.NewRowReadStrategy(inventoryRepository, bookingRepository),
		closureSvc,
		settingsSvc,
		bookingRepository,
		inventoryRepository,
		metricsCollector,
		cfg.Booking.PrimaryCooldown(),
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		inventoryRepository,
		closureSvc,
		settingsSvc,
		checkoutClient,
		dispatcher,
		metricsCollector,
		txMgr,
		location,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		dispatcher,
		location,
		log,
	)

	createBlockUseCase := createBlockUC.NewUseCase(
		bookingRepository,
		inventoryRepository,
		dispatcher,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	manageBooking := manageBookingHandler.NewHandler(bookingSvc, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, log)
	blockedDays := blockedDaysHandler.NewHandler(closureSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	manageInventory := manageInventoryHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (rate limit на IP)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 10*time.Minute)
		go limiter.Run(limiterCtx)
		public.Use(limiter.Limit)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Доступность столов
	public.HandleFunc("/restaurants/{restaurantId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Бронирования гостей
	public.HandleFunc("/restaurants/{restaurantId}/bookings", createBooking.Handle).Methods(http.MethodPost)
	public.HandleFunc("/restaurants/{restaurantId}/bookings/{token}", getBooking.Handle).Methods(http.MethodGet)
	public.HandleFunc("/restaurants/{restaurantId}/bookings/{token}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Уведомления платёжного шлюза
	public.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/restaurants/{restaurantId}/admin").Subrouter()

	// --- Бронирования ---
	if feed != nil {
		bookingFeed := bookingFeedHandler.NewHandler(feed, log)
		admin.HandleFunc("/bookings/feed", bookingFeed.Handle).Methods(http.MethodGet)
	}
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createBooking.HandleAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}", manageBooking.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", manageBooking.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/check-in", manageBooking.HandleCheckIn).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/no-show", manageBooking.HandleNoShow).Methods(http.MethodPost)

	// --- Блокировки и закрытые дни ---
	admin.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-days", blockedDays.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-days", blockedDays.HandleBlock).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-days/{date}", blockedDays.HandleUnblock).Methods(http.MethodDelete)

	// --- Настройки ---
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Зоны и столы ---
	admin.HandleFunc("/zones", manageInventory.HandleListZones).Methods(http.MethodGet)
	admin.HandleFunc("/zones", manageInventory.HandleCreateZone).Methods(http.MethodPost)
	admin.HandleFunc("/zones/{zoneId}", manageInventory.HandleDeleteZone).Methods(http.MethodDelete)
	admin.HandleFunc("/tables", manageInventory.HandleListTables).Methods(http.MethodGet)
	admin.HandleFunc("/tables", manageInventory.HandleCreateTable).Methods(http.MethodPost)
	admin.HandleFunc("/tables/{tableId}", manageInventory.HandleDeleteTable).Methods(http.MethodDelete)

	// CORS на уровне сервера: preflight OPTIONS не совпадает с маршрутами
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
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

	// Дожидаемся отправки накопленных уведомлений
	dispatcher.Close()
	if amqpSink != nil {
		if err := amqpSink.Close(); err != nil {
			log.Warn("Failed to close AMQP connection: %v", err)
		}
	}
	log.Info("Notification dispatcher stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
