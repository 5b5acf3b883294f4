package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability/models"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Service сервис окон доступности специалиста
type Service struct {
	slotRepo SlotRepository
	events   EventSource
	logger   Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(slotRepo SlotRepository, events EventSource, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		events:   events,
		logger:   logger,
	}
}

// CreateSlot добавляет слот доступности
func (s *Service) CreateSlot(ctx context.Context, specialistID int64, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: specialist=%d, date=%s, %s-%s", specialistID, req.Date, req.StartTime, req.EndTime)

	slot, err := toDomainSlot(specialistID, req)
	if err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateSlot: repository error for specialist=%d: %v", specialistID, err)
		return nil, fmt.Errorf("%w: CreateSlot - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateSlot: created slot id=%d", created.ID)
	resp := models.FromDomainSlot(created)
	return &resp, nil
}

// ListSlots получает слоты доступности за период (даты включительно)
func (s *Service) ListSlots(ctx context.Context, specialistID int64, from, to time.Time) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: specialist=%d, period=%s to %s",
		specialistID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if specialistID <= 0 {
		return nil, fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	slots, err := s.slotRepo.ListByRange(ctx, specialistID, from, to, false)
	if err != nil {
		s.logger.Error("ListSlots: repository error for specialist=%d: %v", specialistID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// Windows собирает окна доступности на дату: слоты с is_available и
// бронируемые события типа availability (с примененными исключениями),
// обрезанные границами дня
func (s *Service) Windows(ctx context.Context, specialistID int64, date time.Time) ([]domain.AvailabilityWindow, error) {
	day := domain.DayBounds(date)

	// 1. Слоты доступности
	slots, err := s.slotRepo.ListByRange(ctx, specialistID, day.Start, day.Start, true)
	if err != nil {
		return nil, fmt.Errorf("%w: Windows - list slots: %w", ErrInternal, err)
	}

	windows := make([]domain.AvailabilityWindow, 0, len(slots))
	for _, slot := range slots {
		interval := slot.Interval()
		if !interval.IsValid() {
			continue
		}
		windows = append(windows, domain.AvailabilityWindow{Interval: interval})
	}

	// 2. События доступности, пересекающие день
	events, err := s.events.Candidates(ctx, specialistID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: Windows - list events: %w", ErrInternal, err)
	}

	for _, e := range events {
		if !e.IsBookableAvailability() {
			continue
		}
		clipped, ok := e.Interval().Clip(day)
		if !ok {
			continue
		}
		id := e.ID
		windows = append(windows, domain.AvailabilityWindow{Interval: clipped, SourceEventID: &id})
	}

	return windows, nil
}

// toDomainSlot валидирует запрос и собирает доменную модель
func toDomainSlot(specialistID int64, req *models.CreateSlotRequest) (*domain.AvailabilitySlot, error) {
	if specialistID <= 0 {
		return nil, fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %w", ErrInvalidInput, err)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %w", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %w", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, ErrInvalidTimeRange
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	return &domain.AvailabilitySlot{
		SpecialistID: specialistID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		IsAvailable:  isAvailable,
	}, nil
}
