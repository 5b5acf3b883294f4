package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/conflict"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/slots"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	catalogRepo     CatalogRepository
	bookingRepo     BookingRepository
	windows         WindowSource
	conflicts       ConflictSource
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	defaultDuration int
}

// NewUseCase создает новый экземпляр use case.
// defaultDuration используется, когда у специалиста нет ни одной услуги.
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	windows WindowSource,
	conflicts ConflictSource,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
	defaultDuration int,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultServiceDurationMinutes
	}
	return &UseCase{
		catalogRepo:     catalogRepo,
		bookingRepo:     bookingRepo,
		windows:         windows,
		conflicts:       conflicts,
		metrics:         metrics,
		timeProvider:    timeProvider,
		logger:          logger,
		defaultDuration: defaultDuration,
	}
}

// Execute выполняет use case получения доступных слотов.
//
// Каждое окно доступности проходится шагом, равным длительности услуги, поэтому
// все слоты ответа - точные непересекающиеся кандидаты на бронирование. Слот
// отбрасывается, если пересекает подтвержденное бронирование или событие
// специалиста с учетом его буферов (событие-источник окна не учитывается).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: specialist=%d, service=%d, date=%s",
		req.SpecialistID, ptr.Value(req.ServiceID), req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.DateOf(req.Date)

	if isDateInPast(date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Проверяем специалиста
	if _, err := uc.catalogRepo.GetSpecialist(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, catalogRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("GetAvailableSlots: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	// 4. Определяем длительность слота
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Окна доступности на дату
	windows, err := uc.windows.Windows(ctx, req.SpecialistID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:            date,
		SpecialistID:    req.SpecialistID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no availability on %s for specialist=%d",
			date.Format(domain.DateFormat), req.SpecialistID)
		return resp, nil
	}

	// 6. Подтвержденные бронирования на дату
	confirmed := domain.StatusConfirmed
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		SpecialistID: req.SpecialistID,
		StartDate:    &date,
		EndDate:      &date,
		Status:       &confirmed,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. События, которые могут заблокировать слоты дня
	candidates, err := uc.conflicts.Candidates(ctx, req.SpecialistID, domain.DayBounds(date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load events: %v", err)
		return nil, fmt.Errorf("%w: failed to load events: %v", ErrInternal, err)
	}

	check := func(candidate domain.Interval, sourceEventID *int64) (bool, error) {
		return conflict.Collides(candidates, candidate, sourceEventID) != nil, nil
	}

	// 8. Проходим окна шагом длительности услуги
	intervals, err := slots.List(windows, time.Duration(duration)*time.Minute, busyIntervals(bookings), check)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	resp.Slots = toSlots(intervals, now)
	uc.metrics.AddSlotsListed(len(resp.Slots))

	uc.logger.Info("GetAvailableSlots: generated %d slots of %d min for specialist=%d, date=%s",
		len(resp.Slots), duration, req.SpecialistID, date.Format(domain.DateFormat))

	return resp, nil
}

// resolveDuration длительность услуги из запроса, иначе самой короткой услуги специалиста,
// иначе значение по умолчанию
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.ServiceID != nil {
		service, err := uc.catalogRepo.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return 0, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.BelongsTo(req.SpecialistID) {
			uc.logger.Warn("GetAvailableSlots: service id=%d is not offered by specialist=%d",
				service.ID, req.SpecialistID)
			return 0, ErrServiceNotOffered
		}
		return service.DurationMinutes, nil
	}

	shortest, err := uc.catalogRepo.ShortestServiceDuration(ctx, req.SpecialistID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get shortest service: %v", err)
		return 0, fmt.Errorf("%w: failed to get shortest service: %v", ErrInternal, err)
	}
	if shortest > 0 {
		return shortest, nil
	}
	return uc.defaultDuration, nil
}
