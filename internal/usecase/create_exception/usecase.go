package create_exception

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	eventRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/event"
)

// UseCase use case записи исключения для одного повторения серии
type UseCase struct {
	eventRepo     EventRepository
	exceptionRepo ExceptionRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	exceptionRepo ExceptionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:     eventRepo,
		exceptionRepo: exceptionRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute записывает исключение. Повторная запись на ту же дату заменяет прежнее.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateException: event=%d, type=%s", req.EventID, req.Type)

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateException: validation failed: %v", err)
		return nil, err
	}

	var saved *domain.EventException

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Находим повторение
		target, err := uc.resolveOccurrence(txCtx, req)
		if err != nil {
			return err
		}

		// 3. Записываем исключение
		exc := &domain.EventException{
			EventID:        target.ID,
			ExceptionDate:  target.OccurrenceDate(),
			Type:           req.Type,
			NewStart:       req.NewStart,
			NewEnd:         req.NewEnd,
			NewTitle:       req.NewTitle,
			NewDescription: req.NewDescription,
		}

		// Частичный перенос дополняется до полного интервала с исходной длительностью
		if req.Type == domain.ExceptionModified && (exc.NewStart != nil) != (exc.NewEnd != nil) {
			duration := target.End.Sub(target.Start)
			if exc.NewStart != nil {
				end := exc.NewStart.Add(duration)
				exc.NewEnd = &end
			} else {
				start := target.Start
				exc.NewStart = &start
				if !exc.NewEnd.After(start) {
					return ErrInvalidTimeRange
				}
			}
		}

		saved, err = uc.exceptionRepo.Upsert(txCtx, exc)
		if err != nil {
			uc.logger.Error("CreateException: failed to save exception for event id=%d: %v", target.ID, err)
			return fmt.Errorf("%w: failed to save exception: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEventNotFound) || errors.Is(err, ErrOccurrenceNotFound) || errors.Is(err, ErrNotRecurring) {
			uc.logger.Warn("CreateException: event=%d rejected: %v", req.EventID, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateException: exception id=%d saved for event id=%d on %s",
		saved.ID, saved.EventID, saved.ExceptionDate.Format(domain.DateFormat))
	return &Response{Exception: saved}, nil
}

// resolveOccurrence возвращает строку повторения, к которой относится исключение
func (uc *UseCase) resolveOccurrence(ctx context.Context, req *Request) (*domain.CalendarEvent, error) {
	event, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CreateException: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}
	if !event.IsActive {
		return nil, ErrEventNotFound
	}
	if !event.InSeries() {
		return nil, ErrNotRecurring
	}

	if req.Date == nil || domain.SameDate(event.OccurrenceDate(), *req.Date) {
		return event, nil
	}

	members, err := uc.eventRepo.ListBySeries(ctx, event.SeriesID.UUID)
	if err != nil {
		uc.logger.Error("CreateException: failed to list series %s: %v", event.SeriesID.UUID, err)
		return nil, fmt.Errorf("%w: failed to list series: %v", ErrInternal, err)
	}
	for _, m := range members {
		if m.IsActive && domain.SameDate(m.OccurrenceDate(), *req.Date) {
			return m, nil
		}
	}
	return nil, ErrOccurrenceNotFound
}
