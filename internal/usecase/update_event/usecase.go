package update_event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	eventRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/event"
	exceptionRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/exception"
)

// UseCase use case изменения события
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

// Execute применяет патч.
//
// ApplyToSeries=true меняет все активные строки серии; сдвиг начала и конца
// применяется как дельта, поэтому каждое повторение сохраняет свою дату.
// ApplyToSeries=false на событии серии записывает исключение modified
// (moved, если меняется календарная дата) и не трогает время строки;
// на одиночном событии меняет саму строку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateEvent: event=%d, applyToSeries=%t", req.EventID, req.ApplyToSeries)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateEvent: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{EventID: req.EventID}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Загружаем событие (в транзакции строка блокируется)
		target, err := uc.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			uc.logger.Error("UpdateEvent: failed to get event id=%d: %v", req.EventID, err)
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}
		if !target.IsActive {
			return ErrEventNotFound
		}

		switch {
		case req.ApplyToSeries && target.InSeries():
			return uc.updateSeries(txCtx, target, &req.Patch, resp)
		case target.InSeries():
			return uc.updateOccurrence(txCtx, target, &req.Patch, resp)
		default:
			return uc.updateSingle(txCtx, target, &req.Patch, resp)
		}
	})
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			uc.logger.Warn("UpdateEvent: event id=%d not found", req.EventID)
		}
		return nil, err
	}

	uc.logger.Info("UpdateEvent: event id=%d updated, rows=%d, exception=%v",
		req.EventID, resp.UpdatedRows, resp.ExceptionID != nil)
	return resp, nil
}

// updateSingle патчит одиночное событие
func (uc *UseCase) updateSingle(ctx context.Context, target *domain.CalendarEvent, p *Patch, resp *Response) error {
	updated := target.Clone()
	applyFields(updated, p)
	if p.Start != nil {
		updated.Start = *p.Start
	}
	if p.End != nil {
		updated.End = *p.End
	}
	if !updated.End.After(updated.Start) {
		return ErrInvalidTimeRange
	}

	if err := uc.eventRepo.Update(ctx, updated); err != nil {
		uc.logger.Error("UpdateEvent: failed to update event id=%d: %v", target.ID, err)
		return fmt.Errorf("%w: failed to update event: %v", ErrInternal, err)
	}
	resp.UpdatedRows = 1
	return nil
}

// updateSeries патчит все активные строки серии
func (uc *UseCase) updateSeries(ctx context.Context, target *domain.CalendarEvent, p *Patch, resp *Response) error {
	var startDelta, endDelta time.Duration
	if p.Start != nil {
		startDelta = p.Start.Sub(target.Start)
	}
	if p.End != nil {
		endDelta = p.End.Sub(target.End)
	}

	members, err := uc.eventRepo.ListBySeries(ctx, target.SeriesID.UUID)
	if err != nil {
		uc.logger.Error("UpdateEvent: failed to list series %s: %v", target.SeriesID.UUID, err)
		return fmt.Errorf("%w: failed to list series: %v", ErrInternal, err)
	}

	for _, member := range members {
		updated := member.Clone()
		applyFields(updated, p)
		updated.Start = member.Start.Add(startDelta)
		updated.End = member.End.Add(endDelta)
		if !updated.End.After(updated.Start) {
			return ErrInvalidTimeRange
		}

		if err := uc.eventRepo.Update(ctx, updated); err != nil {
			uc.logger.Error("UpdateEvent: failed to update series member id=%d: %v", member.ID, err)
			return fmt.Errorf("%w: failed to update series member: %v", ErrInternal, err)
		}
		resp.UpdatedRows++
	}
	return nil
}

// updateOccurrence записывает исключение для одного повторения серии.
// Поля, которые исключение не переопределяет, меняются на самой строке.
// Отмененное повторение не изменяется.
func (uc *UseCase) updateOccurrence(ctx context.Context, target *domain.CalendarEvent, p *Patch, resp *Response) error {
	// Новые переопределения накладываются на уже записанное исключение даты
	date := target.OccurrenceDate()
	exc, err := uc.exceptionRepo.GetByEventDate(ctx, target.ID, date)
	switch {
	case errors.Is(err, exceptionRepo.ErrExceptionNotFound):
		exc = &domain.EventException{EventID: target.ID, ExceptionDate: date}
	case err != nil:
		uc.logger.Error("UpdateEvent: failed to get exception for event id=%d: %v", target.ID, err)
		return fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	case exc.Type == domain.ExceptionCancelled:
		return ErrOccurrenceCancelled
	}

	if p.touchesRow() {
		updated := target.Clone()
		applyFields(updated, p)
		// Заголовок и описание повторения идут через исключение
		updated.Title = target.Title
		updated.Description = target.Description
		if err := uc.eventRepo.Update(ctx, updated); err != nil {
			uc.logger.Error("UpdateEvent: failed to update occurrence id=%d: %v", target.ID, err)
			return fmt.Errorf("%w: failed to update occurrence: %v", ErrInternal, err)
		}
		resp.UpdatedRows = 1
	}

	if !p.touchesOccurrence() {
		return nil
	}

	if p.Title != nil {
		exc.NewTitle = p.Title
	}
	if p.Description != nil {
		exc.NewDescription = p.Description
	}

	if p.Start != nil || p.End != nil {
		baseStart, baseEnd := target.Start, target.End
		if exc.NewStart != nil && exc.NewEnd != nil {
			baseStart, baseEnd = *exc.NewStart, *exc.NewEnd
		}

		newStart := baseStart
		if p.Start != nil {
			newStart = *p.Start
		}
		// При переносе без нового конца длительность сохраняется
		newEnd := newStart.Add(baseEnd.Sub(baseStart))
		if p.End != nil {
			newEnd = *p.End
		}
		if !newEnd.After(newStart) {
			return ErrInvalidTimeRange
		}
		exc.NewStart = &newStart
		exc.NewEnd = &newEnd
	}

	exc.Type = domain.ExceptionModified
	if exc.NewStart != nil && !domain.SameDate(*exc.NewStart, exc.ExceptionDate) {
		exc.Type = domain.ExceptionMoved
	}

	saved, err := uc.exceptionRepo.Upsert(ctx, exc)
	if err != nil {
		uc.logger.Error("UpdateEvent: failed to save exception for event id=%d: %v", target.ID, err)
		return fmt.Errorf("%w: failed to save exception: %v", ErrInternal, err)
	}
	resp.ExceptionID = &saved.ID
	resp.ExceptionType = &saved.Type
	return nil
}

// applyFields переносит на событие все поля патча, кроме времени
func applyFields(e *domain.CalendarEvent, p *Patch) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = p.Description
	}
	if p.Location != nil {
		e.Location = p.Location
	}
	if p.EventType != nil {
		e.EventType = *p.EventType
	}
	if p.Category != nil {
		e.Category = p.Category
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
	if p.Color != nil {
		e.Color = p.Color
	}
	if p.Visibility != nil {
		e.Visibility = *p.Visibility
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.IsBookable != nil {
		e.IsBookable = *p.IsBookable
	}
	if p.MaxBookings != nil {
		e.MaxBookings = p.MaxBookings
	}
	if p.BufferBefore != nil {
		e.BufferBefore = *p.BufferBefore
	}
	if p.BufferAfter != nil {
		e.BufferAfter = *p.BufferAfter
	}
}
