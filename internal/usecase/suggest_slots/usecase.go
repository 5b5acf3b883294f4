package suggest_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/suggest"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/catalog"
	preferencesRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/preferences"
)

// UseCase use case ранжированных подсказок времени для специалиста
type UseCase struct {
	specialistRepo  SpecialistRepository
	preferencesRepo PreferencesRepository
	bookingRepo     BookingRepository
	events          EventSource
	timeProvider    TimeProvider
	logger          Logger
	settings        Settings
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	specialistRepo SpecialistRepository,
	preferencesRepo PreferencesRepository,
	bookingRepo BookingRepository,
	events EventSource,
	timeProvider TimeProvider,
	logger Logger,
	settings Settings,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if settings.DefaultDurationMinutes <= 0 {
		settings.DefaultDurationMinutes = domain.DefaultServiceDurationMinutes
	}
	if settings.DefaultStepMinutes <= 0 {
		settings.DefaultStepMinutes = domain.DefaultSlotIncrementMinutes
	}
	if settings.Limit <= 0 {
		settings.Limit = domain.DefaultSuggestionLimit
	}
	if settings.NearbyWindowMinutes <= 0 {
		settings.NearbyWindowMinutes = domain.DefaultNearbyWindowMinutes
	}
	return &UseCase{
		specialistRepo:  specialistRepo,
		preferencesRepo: preferencesRepo,
		bookingRepo:     bookingRepo,
		events:          events,
		timeProvider:    timeProvider,
		logger:          logger,
		settings:        settings,
	}
}

// Execute ищет свободное время в рабочих часах специалиста с шагом slot_increment
// и возвращает лучшие варианты по эвристической оценке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SuggestSlots: specialist=%d, from=%s, to=%s",
		req.SpecialistID, req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat))

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SuggestSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Специалист
	if _, err := uc.specialistRepo.GetSpecialist(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, catalogRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("SuggestSlots: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("SuggestSlots: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	// 3. Настройки расписания (если не заданы - значения по умолчанию)
	prefs, err := uc.preferencesRepo.GetPreferences(ctx, req.SpecialistID)
	if err != nil {
		if !errors.Is(err, preferencesRepo.ErrPreferencesNotFound) {
			uc.logger.Error("SuggestSlots: failed to get preferences: %v", err)
			return nil, fmt.Errorf("%w: failed to get preferences: %v", ErrInternal, err)
		}
		prefs = domain.DefaultPreferences(req.SpecialistID)
	}

	hours, err := uc.preferencesRepo.ListWorkingHours(ctx, req.SpecialistID)
	if err != nil {
		uc.logger.Error("SuggestSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	if len(hours) == 0 {
		uc.logger.Info("SuggestSlots: specialist=%d has no working hours", req.SpecialistID)
		return &Response{SpecialistID: req.SpecialistID, Suggestions: []domain.Suggestion{}}, nil
	}

	// 4. События и подтвержденные бронирования диапазона
	window := domain.Interval{Start: req.From, End: req.To}
	events, err := uc.events.Candidates(ctx, req.SpecialistID, window)
	if err != nil {
		uc.logger.Error("SuggestSlots: failed to load events: %v", err)
		return nil, fmt.Errorf("%w: failed to load events: %v", ErrInternal, err)
	}

	confirmed := domain.StatusConfirmed
	fromDate, toDate := domain.DateOf(req.From), domain.DateOf(req.To)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		SpecialistID: req.SpecialistID,
		StartDate:    &fromDate,
		EndDate:      &toDate,
		Status:       &confirmed,
	})
	if err != nil {
		uc.logger.Error("SuggestSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Ранжирование
	query := suggest.Query{
		From:            req.From,
		To:              req.To,
		Duration:        minutes(firstPositive(req.DurationMinutes, uc.settings.DefaultDurationMinutes)),
		Step:            minutes(firstPositive(prefs.SlotIncrement, uc.settings.DefaultStepMinutes)),
		ExcludeWeekends: req.ExcludeWeekends,
		Limit:           firstPositive(req.Limit, uc.settings.Limit),
		NearbyWindow:    minutes(uc.settings.NearbyWindowMinutes),
		Now:             uc.timeProvider.Now(),
	}

	suggestions, err := suggest.Rank(query, suggest.Schedule{
		WorkingHours: workingHoursByDay(hours, req.To),
		Preferences:  prefs,
		Events:       events,
		Bookings:     bookings,
	})
	if err != nil {
		uc.logger.Warn("SuggestSlots: invalid query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("SuggestSlots: %d suggestions for specialist=%d", len(suggestions), req.SpecialistID)
	return &Response{SpecialistID: req.SpecialistID, Suggestions: suggestions}, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
