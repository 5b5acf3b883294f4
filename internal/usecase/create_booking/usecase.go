package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/slots"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/catalog"
	consumerRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/consumer"
	preferencesRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/preferences"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	catalogRepo     CatalogRepository
	preferencesRepo PreferencesRepository
	consumerRepo    ConsumerRepository
	windows         WindowSource
	conflicts       ConflictChecker
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	preferencesRepo PreferencesRepository,
	consumerRepo ConsumerRepository,
	windows WindowSource,
	conflicts ConflictChecker,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:     bookingRepo,
		catalogRepo:     catalogRepo,
		preferencesRepo: preferencesRepo,
		consumerRepo:    consumerRepo,
		windows:         windows,
		conflicts:       conflicts,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Проверки идут по порядку и каждая завершает запрос своей ошибкой: специалист,
// услуга и ее принадлежность специалисту, дата, попадание интервала в окно
// доступности, пересечение с подтвержденными бронированиями. Проверка и вставка
// выполняются в одной сериализуемой транзакции под advisory-блокировкой дня
// специалиста; ограничение исключения в БД страхует от двойного бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: specialist=%d, service=%d, date=%s, time=%s",
		req.SpecialistID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.DateOf(req.Date)

	// 3. Получаем специалиста
	if _, err := uc.catalogRepo.GetSpecialist(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, catalogRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateBooking: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateBooking: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %w", ErrInternal, err)
	}

	// 4. Получаем услугу и проверяем, что ее оказывает этот специалист
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.BelongsTo(req.SpecialistID) {
		uc.logger.Warn("CreateBooking: service id=%d is not offered by specialist=%d", req.ServiceID, req.SpecialistID)
		return nil, ErrServiceNotOffered
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil || !endTime.IsAfter(req.StartTime) {
		uc.logger.Warn("CreateBooking: %s + %d min crosses midnight", req.StartTime, service.DurationMinutes)
		return nil, uc.reject(rejectOutsideAvailability, ErrOutsideAvailability)
	}
	requested := domain.Interval{Start: req.StartTime.On(date), End: endTime.On(date)}

	// 5. Валидация даты с учетом настроек специалиста
	prefs, err := uc.preferencesRepo.GetPreferences(ctx, req.SpecialistID)
	if err != nil {
		if !errors.Is(err, preferencesRepo.ErrPreferencesNotFound) {
			uc.logger.Error("CreateBooking: failed to get preferences: %v", err)
			return nil, fmt.Errorf("%w: failed to get preferences: %w", ErrInternal, err)
		}
		prefs = domain.DefaultPreferences(req.SpecialistID)
	}

	if err := validateDate(date, now, prefs.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, uc.reject(rejectInvalidDate, err)
	}
	if err := validateBookingTime(date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, uc.reject(rejectInvalidDate, err)
	}

	var (
		result          *domain.Booking
		consumerCreated bool
		rejectReason    string
	)

	// Отказ запоминается, а учитывается в метриках один раз после завершения транзакции
	reject := func(reason string, err error) error {
		rejectReason = reason
		return err
	}

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		rejectReason = ""

		// 6.1. Блокируем день специалиста
		if err := uc.bookingRepo.LockSpecialistDay(txCtx, req.SpecialistID, date); err != nil {
			uc.logger.Error("CreateBooking: failed to lock specialist day: %v", err)
			return fmt.Errorf("%w: failed to lock specialist day: %w", ErrInternal, err)
		}

		// 6.2. Интервал должен целиком лежать в одном окне доступности
		windows, err := uc.windows.Windows(txCtx, req.SpecialistID, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %w", ErrInternal, err)
		}
		if _, ok := slots.ContainedIn(requested, windows); !ok {
			uc.logger.Warn("CreateBooking: %s-%s is outside availability on %s",
				req.StartTime, endTime, date.Format(domain.DateFormat))
			return reject(rejectOutsideAvailability, ErrOutsideAvailability)
		}

		// 6.3. Подтвержденные бронирования дня с блокировкой (FOR UPDATE)
		confirmed := domain.StatusConfirmed
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			SpecialistID: req.SpecialistID,
			StartDate:    &date,
			EndDate:      &date,
			Status:       &confirmed,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		if other := overlappingBooking(requested, bookings); other != nil {
			uc.logger.Warn("CreateBooking: slot overlaps %s", other)
			return reject(rejectBookingOverlap, ErrSlotNotAvailable)
		}

		// 6.4. События специалиста с буферами: достаточно одного окна, содержащего
		// интервал, без конфликтов (событие-источник окна не учитывается)
		admitted, err := slots.Admits(requested, windows, func(candidate domain.Interval, sourceEventID *int64) (bool, error) {
			return uc.conflicts.HasConflict(txCtx, req.SpecialistID, candidate, sourceEventID)
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check event conflicts: %v", err)
			return fmt.Errorf("%w: failed to check event conflicts: %w", ErrInternal, err)
		}
		if !admitted {
			uc.logger.Warn("CreateBooking: slot conflicts with a calendar event")
			return reject(rejectEventConflict, ErrSlotNotAvailable)
		}

		// 6.5. Находим или создаем клиента
		consumer, isNew, err := uc.resolveConsumer(txCtx, req.Contact)
		if err != nil {
			return err
		}
		consumerCreated = isNew

		// 6.6. Сохраняем бронирование
		booking := &domain.Booking{
			SpecialistID: req.SpecialistID,
			ServiceID:    req.ServiceID,
			ConsumerID:   ptr.Ptr(consumer.ID),
			ClientName:   req.Contact.Name,
			ClientEmail:  req.Contact.Email,
			ClientPhone:  req.Contact.Phone,
			Date:         date,
			StartTime:    req.StartTime,
			EndTime:      endTime,
			Status:       domain.StatusConfirmed,
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: overlap rejected by storage for specialist=%d on %s",
					req.SpecialistID, date.Format(domain.DateFormat))
				return reject(rejectBookingOverlap, ErrSlotNotAvailable)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if rejectReason != "" {
			uc.metrics.IncBookingRejected(rejectReason)
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d for consumer id=%d",
		result.ID, *result.ConsumerID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		SpecialistID:    result.SpecialistID,
		ServiceID:       result.ServiceID,
		ConsumerID:      *result.ConsumerID,
		ConsumerCreated: consumerCreated,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: service.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     service.Name,
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		ClientPhone:     result.ClientPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveConsumer находит клиента по нормализованному email или телефону,
// иначе создает нового. Второй результат true, если клиент создан.
func (uc *UseCase) resolveConsumer(ctx context.Context, contact domain.ContactInfo) (*domain.Consumer, bool, error) {
	email, phone := contact.NormalizedEmail(), contact.NormalizedPhone()

	existing, err := uc.consumerRepo.FindByNormalizedContact(ctx, email, phone)
	if err == nil {
		uc.logger.Info("CreateBooking: matched existing consumer id=%d", existing.ID)
		return existing, false, nil
	}
	if !errors.Is(err, consumerRepo.ErrConsumerNotFound) {
		uc.logger.Error("CreateBooking: failed to find consumer: %v", err)
		return nil, false, fmt.Errorf("%w: failed to find consumer: %w", ErrInternal, err)
	}

	consumer := &domain.Consumer{
		Name:            contact.Name,
		Email:           contact.Email,
		Phone:           contact.Phone,
		EmailNormalized: nonEmpty(email),
		PhoneNormalized: nonEmpty(phone),
	}
	created, err := uc.consumerRepo.Create(ctx, consumer)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create consumer: %v", err)
		return nil, false, fmt.Errorf("%w: failed to create consumer: %w", ErrInternal, err)
	}
	uc.logger.Info("CreateBooking: created consumer id=%d", created.ID)
	return created, true, nil
}

// reject учитывает отказ в метриках и возвращает ошибку без изменений
func (uc *UseCase) reject(reason string, err error) error {
	uc.metrics.IncBookingRejected(reason)
	return err
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

