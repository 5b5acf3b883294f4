package delete_event

import (
	"context"
	"errors"
	"fmt"

	eventRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/event"
)

// UseCase use case мягкого удаления события
type UseCase struct {
	eventRepo EventRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(eventRepo EventRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		eventRepo: eventRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute снимает флаг is_active с события. DeleteSeries каскадирует по серии;
// без него удаляется только указанная строка, даже если она входит в серию.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteEvent: event=%d, deleteSeries=%t", req.EventID, req.DeleteSeries)

	if req.EventID <= 0 {
		return nil, fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}

	resp := &Response{}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Загружаем событие
		target, err := uc.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			uc.logger.Error("DeleteEvent: failed to get event id=%d: %v", req.EventID, err)
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}
		if !target.IsActive {
			return ErrEventNotFound
		}

		// 2. Каскад по серии
		if req.DeleteSeries && target.InSeries() {
			n, err := uc.eventRepo.DeactivateSeries(txCtx, target.SeriesID.UUID)
			if err != nil {
				uc.logger.Error("DeleteEvent: failed to deactivate series %s: %v", target.SeriesID.UUID, err)
				return fmt.Errorf("%w: failed to deactivate series: %v", ErrInternal, err)
			}
			resp.Deactivated = n
			return nil
		}

		// 3. Одна строка
		if err := uc.eventRepo.Deactivate(txCtx, target.ID); err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			uc.logger.Error("DeleteEvent: failed to deactivate event id=%d: %v", target.ID, err)
			return fmt.Errorf("%w: failed to deactivate event: %v", ErrInternal, err)
		}
		resp.Deactivated = 1
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			uc.logger.Warn("DeleteEvent: event id=%d not found", req.EventID)
		}
		return nil, err
	}

	uc.logger.Info("DeleteEvent: deactivated %d rows for event id=%d", resp.Deactivated, req.EventID)
	return resp, nil
}
