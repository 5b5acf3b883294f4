package create_event

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/conflict"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/recurrence"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/catalog"
)

// UseCase use case создания события календаря
type UseCase struct {
	eventRepo      EventRepository
	specialistRepo SpecialistRepository
	conflicts      ConflictSource
	txManager      TransactionManager
	metrics        Metrics
	logger         Logger
	horizonDays    int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	specialistRepo SpecialistRepository,
	conflicts ConflictSource,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	horizonDays int,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultRecurrenceHorizonDays
	}
	return &UseCase{
		eventRepo:      eventRepo,
		specialistRepo: specialistRepo,
		conflicts:      conflicts,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
		horizonDays:    horizonDays,
	}
}

// Execute создает событие. Повторяющееся событие сразу материализуется:
// базовая строка плюс по строке на каждое повторение. Повторения, пересекающиеся
// с другими активными событиями специалиста, молча отбрасываются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateEvent: specialist=%d, title=%q, start=%s, end=%s, recurring=%t",
		req.SpecialistID, req.Title, req.Start.Format(domain.DateTimeFormat), req.End.Format(domain.DateTimeFormat),
		req.RecurrenceRule != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateEvent: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбираем правило повторения
	var rule *recurrence.Rule
	if req.RecurrenceRule != nil {
		parsed, err := recurrence.ParseRule(*req.RecurrenceRule)
		if err != nil {
			uc.logger.Warn("CreateEvent: invalid recurrence rule %q: %v", *req.RecurrenceRule, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		rule = &parsed
	}

	// 3. Проверяем специалиста
	if _, err := uc.specialistRepo.GetSpecialist(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, catalogRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateEvent: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateEvent: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	base := newEvent(req)
	resp := &Response{}

	// 4. Сохраняем событие и повторения в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if rule == nil {
			created, err := uc.eventRepo.Create(txCtx, base)
			if err != nil {
				uc.logger.Error("CreateEvent: failed to create event: %v", err)
				return fmt.Errorf("%w: failed to create event: %v", ErrInternal, err)
			}
			resp.ID = created.ID
			return nil
		}

		// 4.1. Разворачиваем правило
		occurrences, err := recurrence.Expand(base.Interval(), *rule, recurrence.Options{HorizonDays: uc.horizonDays})
		if err != nil {
			uc.logger.Warn("CreateEvent: expansion failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}

		// 4.2. Загружаем существующие события на весь период серии до вставки базы
		var existing []*domain.CalendarEvent
		if len(occurrences) > 0 {
			span := domain.Interval{Start: occurrences[0].Start, End: occurrences[len(occurrences)-1].End}
			existing, err = uc.conflicts.Candidates(txCtx, req.SpecialistID, span)
			if err != nil {
				uc.logger.Error("CreateEvent: failed to load existing events: %v", err)
				return fmt.Errorf("%w: failed to load existing events: %v", ErrInternal, err)
			}
		}

		// 4.3. Базовое событие серии
		seriesID := uuid.New()
		ruleString := rule.String()
		base.IsRecurring = true
		base.RecurrenceRule = &ruleString
		base.SeriesID = uuid.NullUUID{UUID: seriesID, Valid: true}
		base.IsBaseInstance = true

		created, err := uc.eventRepo.Create(txCtx, base)
		if err != nil {
			uc.logger.Error("CreateEvent: failed to create base event: %v", err)
			return fmt.Errorf("%w: failed to create base event: %v", ErrInternal, err)
		}
		resp.ID = created.ID
		resp.SeriesID = &seriesID

		// 4.4. Отбрасываем повторения, конфликтующие с другими событиями
		instances := make([]*domain.CalendarEvent, 0, len(occurrences))
		for _, occ := range occurrences {
			if hit := conflict.Collides(existing, occ, nil); hit != nil {
				resp.OccurrencesSkipped++
				continue
			}
			instances = append(instances, newInstance(created, occ))
		}

		// 4.5. Материализуем повторения
		if err := uc.eventRepo.CreateBatch(txCtx, instances); err != nil {
			uc.logger.Error("CreateEvent: failed to create occurrences: %v", err)
			return fmt.Errorf("%w: failed to create occurrences: %v", ErrInternal, err)
		}
		resp.OccurrencesCreated = len(instances)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AddOccurrences(resp.OccurrencesCreated, resp.OccurrencesSkipped)
	uc.logger.Info("CreateEvent: created event id=%d, occurrences=%d, skipped=%d",
		resp.ID, resp.OccurrencesCreated, resp.OccurrencesSkipped)

	return resp, nil
}

func newEvent(req *Request) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		SpecialistID: req.SpecialistID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Start:        req.Start,
		End:          req.End,
		IsAllDay:     req.IsAllDay,
		Timezone:     req.Timezone,
		EventType:    req.EventType,
		Category:     req.Category,
		Priority:     req.Priority,
		Color:        req.Color,
		Visibility:   req.Visibility,
		IsBookable:   req.IsBookable,
		MaxBookings:  req.MaxBookings,
		BufferBefore: req.BufferBefore,
		BufferAfter:  req.BufferAfter,
		Status:       req.Status,
		IsActive:     true,
	}
}

// newInstance строка повторения: копия базы без правила, с собственным интервалом
func newInstance(base *domain.CalendarEvent, occ domain.Interval) *domain.CalendarEvent {
	instance := base.Clone()
	instance.ID = 0
	instance.Start = occ.Start
	instance.End = occ.End
	instance.IsRecurring = false
	instance.RecurrenceRule = nil
	instance.IsBaseInstance = false
	originalStart := occ.Start
	instance.OriginalStart = &originalStart
	return instance
}
