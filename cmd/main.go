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

	cancelBookingHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/create_booking"
	findNextAvailableHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/find_next_available"
	getAvailableSlotsHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/get_booking"
	getGiftcardHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/get_giftcard"
	getStaffBookingsHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/get_staff_bookings"
	getUserBookingsHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/get_user_bookings"
	issueGiftcardHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/issue_giftcard"
	quotePriceHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/quote_price"
	rechargeGiftcardHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/recharge_giftcard"
	refundGiftcardHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/refund_giftcard"
	transferGiftcardHandler "github.com/chrisnails1212/salon-booking-engine/internal/api/handlers/transfer_giftcard"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	"github.com/chrisnails1212/salon-booking-engine/internal/config"
	bookingRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/booking"
	couponRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/coupon"
	giftcardRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/giftcard"
	taxRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/tax"
	catalogServiceClient "github.com/chrisnails1212/salon-booking-engine/internal/integrations/catalogservice"
	staffServiceClient "github.com/chrisnails1212/salon-booking-engine/internal/integrations/staffservice"
	bookingsService "github.com/chrisnails1212/salon-booking-engine/internal/service/bookings"
	ledgerService "github.com/chrisnails1212/salon-booking-engine/internal/service/ledger"
	pricingService "github.com/chrisnails1212/salon-booking-engine/internal/service/pricing"
	promotionsService "github.com/chrisnails1212/salon-booking-engine/internal/service/promotions"
	createBookingUC "github.com/chrisnails1212/salon-booking-engine/internal/usecase/create_booking"
	findNextAvailableUC "github.com/chrisnails1212/salon-booking-engine/internal/usecase/find_next_available"
	getAvailableSlotsUC "github.com/chrisnails1212/salon-booking-engine/internal/usecase/get_available_slots"
	quotePriceUC "github.com/chrisnails1212/salon-booking-engine/internal/usecase/quote_price"
	"github.com/chrisnails1212/salon-booking-engine/pkg/dbmetrics"
	"github.com/chrisnails1212/salon-booking-engine/pkg/logger"
	"github.com/chrisnails1212/salon-booking-engine/pkg/metrics"
	"github.com/chrisnails1212/salon-booking-engine/pkg/simpletxmanager"
	"github.com/chrisnails1212/salon-booking-engine/pkg/txmanager"
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

	log.Info("Starting salon-booking-engine...")
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

	// Инициализируем интеграционных клиентов
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		couponRepository   *couponRepo.Repository
		giftcardRepository *giftcardRepo.Repository
		taxRepository      *taxRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		giftcardRepository = giftcardRepo.NewRepository(wrappedDB)
		taxRepository = taxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		giftcardRepository = giftcardRepo.NewRepository(db)
		taxRepository = taxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	pricingSvc := pricingService.NewService()
	promotionsSvc := promotionsService.NewService()
	ledgerSvc := ledgerService.NewService(
		giftcardRepository,
		txMgr,
		ledgerService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		staffClient,
		catalogClient,
		log,
		cfg.Engine.SlotGranularityMinutes,
		cfg.Engine.MaxLookaheadDays,
	)

	findNextAvailableUseCase := findNextAvailableUC.NewUseCase(
		getAvailableSlotsUseCase,
		log,
		cfg.Engine.MaxLookaheadDays,
	)

	quotePriceUseCase := quotePriceUC.NewUseCase(
		couponRepository,
		giftcardRepository,
		taxRepository,
		catalogClient,
		pricingSvc,
		promotionsSvc,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		couponRepository,
		giftcardRepository,
		taxRepository,
		staffClient,
		catalogClient,
		pricingSvc,
		promotionsSvc,
		ledgerSvc,
		txMgr,
		log,
		cfg.Engine.SlotGranularityMinutes,
		cfg.Engine.MaxLookaheadDays,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	findNextAvailable := findNextAvailableHandler.NewHandler(findNextAvailableUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, log)
	getGiftcard := getGiftcardHandler.NewHandler(ledgerSvc, log)
	issueGiftcard := issueGiftcardHandler.NewHandler(ledgerSvc, log)
	rechargeGiftcard := rechargeGiftcardHandler.NewHandler(ledgerSvc, log)
	transferGiftcard := transferGiftcardHandler.NewHandler(ledgerSvc, log)
	refundGiftcard := refundGiftcardHandler.NewHandler(ledgerSvc, log)

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

	// Получение доступных слотов на дату
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Поиск ближайшего свободного слота
	api.HandleFunc("/services/{serviceId}/next-available",
		findNextAvailable.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Цены ---
	// Предварительный расчет стоимости
	protected.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Расписание бронирований сотрудника
	protected.HandleFunc("/staff/{staffId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)

	// --- Подарочные карты ---
	// Выпуск новой карты
	protected.HandleFunc("/giftcards", issueGiftcard.Handle).Methods(http.MethodPost)

	// Перевод средств между картами
	protected.HandleFunc("/giftcards/transfer", transferGiftcard.Handle).Methods(http.MethodPost)

	// Карта с историей транзакций
	protected.HandleFunc("/giftcards/{code}", getGiftcard.Handle).Methods(http.MethodGet)

	// Пополнение карты
	protected.HandleFunc("/giftcards/{code}/recharge", rechargeGiftcard.Handle).Methods(http.MethodPost)

	// Возврат средств на карту
	protected.HandleFunc("/giftcards/{code}/refund", refundGiftcard.Handle).Methods(http.MethodPost)

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
