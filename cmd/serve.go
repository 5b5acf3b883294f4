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

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	createAvailabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_availability"
	createBookingHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_booking"
	createEventHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_event"
	createExceptionHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_exception"
	deleteEventHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/delete_event"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_booking"
	getPreferencesHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_preferences"
	getWorkingHoursHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_working_hours"
	listAvailabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/list_availability"
	listBookingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/list_bookings"
	listEventsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/list_events"
	replaceWorkingHoursHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/replace_working_hours"
	suggestSlotsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/suggest_slots"
	updateBookingStatusHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_booking_status"
	updateEventHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_event"
	updatePreferencesHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_preferences"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/conflict"
	availabilityRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/catalog"
	consumerRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/consumer"
	eventRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/event"
	exceptionRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/exception"
	preferencesRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/preferences"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CalendarService/internal/service/bookings"
	preferencesService "github.com/m04kA/SMC-CalendarService/internal/service/preferences"
	createBookingUC "github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
	createEventUC "github.com/m04kA/SMC-CalendarService/internal/usecase/create_event"
	createExceptionUC "github.com/m04kA/SMC-CalendarService/internal/usecase/create_exception"
	deleteEventUC "github.com/m04kA/SMC-CalendarService/internal/usecase/delete_event"
	getAvailableSlotsUC "github.com/m04kA/SMC-CalendarService/internal/usecase/get_available_slots"
	listEventsUC "github.com/m04kA/SMC-CalendarService/internal/usecase/list_events"
	suggestSlotsUC "github.com/m04kA/SMC-CalendarService/internal/usecase/suggest_slots"
	updateEventUC "github.com/m04kA/SMC-CalendarService/internal/usecase/update_event"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// txManager общий интерфейс txmanager и simpletxmanager
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting SMC-CalendarService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := openDB(cfg, log)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	defer db.Close()

	// Репозитории работают через обертку с метриками или напрямую через *sql.DB
	var (
		executor dbmetrics.DBExecutor
		txMgr    txManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	events := eventRepo.NewRepository(executor)
	exceptions := exceptionRepo.NewRepository(executor)
	bookings := bookingRepo.NewRepository(executor)
	consumers := consumerRepo.NewRepository(executor)
	catalog := catalogRepo.NewRepository(executor)
	slots := availabilityRepo.NewRepository(executor)
	prefs := preferencesRepo.NewRepository(executor)

	detector := conflict.NewDetector(events, exceptions)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(slots, detector, log)
	bookingSvc := bookingsService.NewService(bookings, log)
	preferencesSvc := preferencesService.NewService(prefs, catalog, txMgr, log)

	// Инициализируем use cases
	sched := cfg.Scheduling

	createEventUseCase := createEventUC.NewUseCase(
		events,
		catalog,
		detector,
		txMgr,
		metricsCollector,
		log,
		sched.RecurrenceHorizonDays,
	)
	updateEventUseCase := updateEventUC.NewUseCase(events, exceptions, txMgr, log)
	deleteEventUseCase := deleteEventUC.NewUseCase(events, txMgr, log)
	createExceptionUseCase := createExceptionUC.NewUseCase(events, exceptions, txMgr, log)
	listEventsUseCase := listEventsUC.NewUseCase(events, exceptions, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalog,
		bookings,
		availabilitySvc,
		detector,
		metricsCollector,
		nil,
		log,
		sched.DefaultServiceDurationMinutes,
	)

	suggestSlotsUseCase := suggestSlotsUC.NewUseCase(
		catalog,
		prefs,
		bookings,
		detector,
		nil,
		log,
		suggestSlotsUC.Settings{
			DefaultDurationMinutes: sched.DefaultServiceDurationMinutes,
			DefaultStepMinutes:     sched.DefaultSlotIncrementMinutes,
			Limit:                  sched.SuggestionLimit,
			NearbyWindowMinutes:    sched.NearbyWindowMinutes,
		},
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		catalog,
		prefs,
		consumers,
		availabilitySvc,
		detector,
		txMgr,
		metricsCollector,
		nil,
		log,
	)

	// Инициализируем handlers
	createEvent := createEventHandler.NewHandler(createEventUseCase, log)
	updateEvent := updateEventHandler.NewHandler(updateEventUseCase, log)
	deleteEvent := deleteEventHandler.NewHandler(deleteEventUseCase, log)
	createException := createExceptionHandler.NewHandler(createExceptionUseCase, log)
	listEvents := listEventsHandler.NewHandler(listEventsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	suggestSlots := suggestSlotsHandler.NewHandler(suggestSlotsUseCase, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	getPreferences := getPreferencesHandler.NewHandler(preferencesSvc, log)
	updatePreferences := updatePreferencesHandler.NewHandler(preferencesSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(preferencesSvc, log)
	replaceWorkingHours := replaceWorkingHoursHandler.NewHandler(preferencesSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- События календаря ---
	api.HandleFunc("/specialists/{specialistId}/events", createEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/specialists/{specialistId}/events", listEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventId}", updateEvent.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/events/{eventId}", deleteEvent.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/events/{eventId}/exceptions", createException.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	api.HandleFunc("/specialists/{specialistId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/specialists/{specialistId}/suggestions", suggestSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/specialists/{specialistId}/availability", createAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/specialists/{specialistId}/availability", listAvailability.Handle).Methods(http.MethodGet)

	// --- Настройки специалиста ---
	api.HandleFunc("/specialists/{specialistId}/preferences", getPreferences.Handle).Methods(http.MethodGet)
	api.HandleFunc("/specialists/{specialistId}/preferences", updatePreferences.Handle).Methods(http.MethodPut)
	api.HandleFunc("/specialists/{specialistId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/specialists/{specialistId}/working-hours", replaceWorkingHours.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/specialists/{specialistId}/bookings", listBookings.Handle).Methods(http.MethodGet)

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
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed to start: %v", err)
		close(stopMetricsCh)
		return err
	}

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
