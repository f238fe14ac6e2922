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

	completeBookingHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/complete_booking"
	copySlotsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/copy_slots"
	createBookingHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/create_booking"
	createManualBookingHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/create_manual_booking"
	deleteBookingHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/get_booking"
	getBookingFormHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/get_booking_form"
	getBookingSettingsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/get_booking_settings"
	getCalendarViewHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/get_calendar_view"
	getMonthAvailabilityHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/get_month_availability"
	listBookingsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/list_bookings"
	manageBlockedDatesHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/manage_blocked_dates"
	manageBlockedSlotsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/manage_blocked_slots"
	manageCalendarSettingsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/manage_calendar_settings"
	manageCustomSlotsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/manage_custom_slots"
	manageQuestionnairesHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/manage_questionnaires"
	syncCalendarHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/sync_calendar"
	updateBookingHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/update_booking"
	updateBookingSettingsHandler "github.com/silwerlining/SLP-BookingService/internal/api/handlers/update_booking_settings"
	"github.com/silwerlining/SLP-BookingService/internal/api/middleware"
	"github.com/silwerlining/SLP-BookingService/internal/config"
	bookingRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/booking"
	calendarMirrorRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarmirror"
	calendarSettingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarsettings"
	questionnaireRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/questionnaire"
	scheduleRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/schedule"
	settingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/settings"
	tokenRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/token"
	"github.com/silwerlining/SLP-BookingService/internal/integrations/caldav"
	bookingsService "github.com/silwerlining/SLP-BookingService/internal/service/bookings"
	settingsService "github.com/silwerlining/SLP-BookingService/internal/service/settings"
	buildCalendarViewUC "github.com/silwerlining/SLP-BookingService/internal/usecase/build_calendar_view"
	completeBookingUC "github.com/silwerlining/SLP-BookingService/internal/usecase/complete_booking"
	copySlotsUC "github.com/silwerlining/SLP-BookingService/internal/usecase/copy_slots"
	createBookingUC "github.com/silwerlining/SLP-BookingService/internal/usecase/create_booking"
	createManualBookingUC "github.com/silwerlining/SLP-BookingService/internal/usecase/create_manual_booking"
	resolveAvailabilityUC "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
	syncCalendarUC "github.com/silwerlining/SLP-BookingService/internal/usecase/sync_calendar"
	"github.com/silwerlining/SLP-BookingService/pkg/dbmetrics"
	"github.com/silwerlining/SLP-BookingService/pkg/logger"
	"github.com/silwerlining/SLP-BookingService/pkg/metrics"
	"github.com/silwerlining/SLP-BookingService/pkg/simpletxmanager"
	"github.com/silwerlining/SLP-BookingService/pkg/txmanager"
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

	log.Info("Starting SLP-BookingService...")
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

	// CalDAV-клиент: учётные данные берутся из БД при каждом вызове
	calendarClient := caldav.NewClient(time.Duration(cfg.CalDAV.Timeout)*time.Second, log)
	log.Info("CalDAV client initialized (timeout=%ds, sync_window=%dd)",
		cfg.CalDAV.Timeout, cfg.CalDAV.SyncWindowDays)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository          *bookingRepo.Repository
		scheduleRepository         *scheduleRepo.Repository
		settingsRepository         *settingsRepo.Repository
		mirrorRepository           *calendarMirrorRepo.Repository
		calendarSettingsRepository *calendarSettingsRepo.Repository
		tokenRepository            *tokenRepo.Repository
		questionnaireRepository    *questionnaireRepo.Repository
	)

	// Интерфейс менеджера транзакций, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		mirrorRepository = calendarMirrorRepo.NewRepository(wrappedDB)
		calendarSettingsRepository = calendarSettingsRepo.NewRepository(wrappedDB)
		tokenRepository = tokenRepo.NewRepository(wrappedDB)
		questionnaireRepository = questionnaireRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		mirrorRepository = calendarMirrorRepo.NewRepository(db)
		calendarSettingsRepository = calendarSettingsRepo.NewRepository(db)
		tokenRepository = tokenRepo.NewRepository(db)
		questionnaireRepository = questionnaireRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем use cases
	availabilityResolver := resolveAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		settingsRepository,
		mirrorRepository,
		&resolveAvailabilityUC.RealTimeProvider{},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityResolver,
		txMgr,
		log,
	)

	createManualBookingUseCase := createManualBookingUC.NewUseCase(
		bookingRepository,
		tokenRepository,
		availabilityResolver,
		txMgr,
		log,
	)

	completeBookingUseCase := completeBookingUC.NewUseCase(
		bookingRepository,
		tokenRepository,
		questionnaireRepository,
		txMgr,
		log,
	)

	buildCalendarViewUseCase := buildCalendarViewUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		mirrorRepository,
		log,
	)

	syncCalendarUseCase := syncCalendarUC.NewUseCase(
		calendarClient,
		calendarSettingsRepository,
		mirrorRepository,
		bookingRepository,
		txMgr,
		&syncCalendarUC.RealTimeProvider{},
		cfg.CalDAV.SyncWindowDays,
		log,
	)

	copySlotsUseCase := copySlotsUC.NewUseCase(scheduleRepository, txMgr, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		availabilityResolver,
		calendarClient,
		calendarSettingsRepository,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		scheduleRepository,
		questionnaireRepository,
		calendarSettingsRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilityResolver, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(availabilityResolver, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookingForm := getBookingFormHandler.NewHandler(completeBookingUseCase, log)
	completeBooking := completeBookingHandler.NewHandler(completeBookingUseCase, log)
	getBookingSettings := getBookingSettingsHandler.NewHandler(settingsSvc, log)

	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	createManualBooking := createManualBookingHandler.NewHandler(createManualBookingUseCase, log)
	getCalendarView := getCalendarViewHandler.NewHandler(buildCalendarViewUseCase, log)
	updateBookingSettings := updateBookingSettingsHandler.NewHandler(settingsSvc, log)
	manageBlockedDates := manageBlockedDatesHandler.NewHandler(settingsSvc, log)
	manageBlockedSlots := manageBlockedSlotsHandler.NewHandler(settingsSvc, log)
	manageCustomSlots := manageCustomSlotsHandler.NewHandler(settingsSvc, log)
	manageQuestionnaires := manageQuestionnairesHandler.NewHandler(settingsSvc, log)
	copySlots := copySlotsHandler.NewHandler(copySlotsUseCase, log)
	manageCalendarSettings := manageCalendarSettingsHandler.NewHandler(settingsSvc, log)
	syncCalendar := syncCalendarHandler.NewHandler(syncCalendarUseCase, log)

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
	// PUBLIC ROUTES (клиентская часть, без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/availability/times", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Сводка доступности по месяцу
	api.HandleFunc("/availability/month", getMonthAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Форма ручного бронирования по одноразовому токену
	api.HandleFunc("/booking-token/{token}", getBookingForm.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-token/{token}/complete", completeBooking.Handle).Methods(http.MethodPost)

	// Публичные настройки бронирования (длительность, наценка выходного дня)
	api.HandleFunc("/booking-settings", getBookingSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.AdminToken))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{id}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{id}/status", updateBooking.HandleStatus).Methods(http.MethodPut)
	admin.HandleFunc("/manual-bookings", createManualBooking.Handle).Methods(http.MethodPost)

	// --- Календарь оператора ---
	admin.HandleFunc("/calendar-view", getCalendarView.Handle).Methods(http.MethodGet)

	// --- Настройки расписания ---
	admin.HandleFunc("/booking-settings", updateBookingSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/blocked-dates", manageBlockedDates.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{id}", manageBlockedDates.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/blocked-slots", manageBlockedSlots.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-slots/{id}", manageBlockedSlots.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/custom-slots", manageCustomSlots.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/custom-slots/{id}", manageCustomSlots.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule/copy-slots", copySlots.Handle).Methods(http.MethodPost)

	// --- Анкеты категорий ---
	admin.HandleFunc("/questionnaires/{category}", manageQuestionnaires.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/questionnaires/{category}", manageQuestionnaires.HandleUpsert).Methods(http.MethodPut)

	// --- Внешний календарь ---
	admin.HandleFunc("/calendar-settings", manageCalendarSettings.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/calendar-settings", manageCalendarSettings.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/calendar/sync", syncCalendar.HandleSync).Methods(http.MethodPost)
	admin.HandleFunc("/calendar/test", syncCalendar.HandleTest).Methods(http.MethodPost)

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
