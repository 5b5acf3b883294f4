package list_events

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/exceptions"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// UseCase use case календарного представления специалиста
type UseCase struct {
	eventRepo     EventRepository
	exceptionRepo ExceptionRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(eventRepo EventRepository, exceptionRepo ExceptionRepository, logger Logger) *UseCase {
	return &UseCase{
		eventRepo:     eventRepo,
		exceptionRepo: exceptionRepo,
		logger:        logger,
	}
}

// Execute возвращает активные события периода. Отмененные исключением
// вхождения не попадают в ответ, измененные и перенесенные отдаются с
// перекрытыми полями и по новому времени.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListEvents: specialist=%d, from=%s, to=%s",
		req.SpecialistID, req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat))

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListEvents: validation failed: %v", err)
		return nil, err
	}
	window := domain.Interval{Start: req.From, End: req.To}

	// 2. События, исходно пересекающие период (фильтры применяются после наложения)
	events, err := uc.eventRepo.List(ctx, domain.EventsFilter{
		SpecialistID: req.SpecialistID,
		From:         &req.From,
		To:           &req.To,
	})
	if err != nil {
		uc.logger.Error("ListEvents: failed to list events for specialist=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to list events: %v", ErrInternal, err)
	}

	// 3. Исключения для найденных событий и для перенесенных в период
	ids := make([]int64, 0, len(events))
	loaded := make(map[int64]struct{}, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
		loaded[e.ID] = struct{}{}
	}

	excs, err := uc.exceptionRepo.ListByEventIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("ListEvents: failed to list exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to list exceptions: %v", ErrInternal, err)
	}

	movedIn, err := uc.exceptionRepo.ListInWindow(ctx, req.SpecialistID, window)
	if err != nil {
		uc.logger.Error("ListEvents: failed to list exceptions in window: %v", err)
		return nil, fmt.Errorf("%w: failed to list exceptions in window: %v", ErrInternal, err)
	}
	excs = append(excs, movedIn...)

	missing := make([]int64, 0)
	for _, exc := range movedIn {
		if _, ok := loaded[exc.EventID]; !ok {
			missing = append(missing, exc.EventID)
			loaded[exc.EventID] = struct{}{}
		}
	}
	if len(missing) > 0 {
		extra, err := uc.eventRepo.GetByIDs(ctx, missing)
		if err != nil {
			uc.logger.Error("ListEvents: failed to load moved events: %v", err)
			return nil, fmt.Errorf("%w: failed to load moved events: %v", ErrInternal, err)
		}
		for _, e := range extra {
			if e.IsActive {
				events = append(events, e)
			}
		}
	}

	// 4. Наложение исключений, фильтры и отсечение по периоду
	applied := exceptions.Apply(events, exceptions.NewIndex(excs))
	result := make([]*domain.CalendarEvent, 0, len(applied))
	for _, e := range applied {
		if !domain.Overlaps(e.Interval(), window) {
			continue
		}
		if !matches(e, req) {
			continue
		}
		result = append(result, e)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.Before(result[j].Start)
		}
		return result[i].ID < result[j].ID
	})

	uc.logger.Info("ListEvents: returned %d events for specialist=%d", len(result), req.SpecialistID)
	return &Response{Events: result}, nil
}
