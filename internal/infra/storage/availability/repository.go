package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

// Repository репозиторий слотов доступности (таблица availability_slots)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет слот доступности
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns("specialist_id", "date", "start_time", "end_time", "is_available").
		Values(slot.SpecialistID, slot.Date, slot.StartTime, slot.EndTime, slot.IsAvailable).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// ListByRange получает слоты специалиста за период [from, to] (даты включительно).
// onlyAvailable отбрасывает слоты с is_available = false.
func (r *Repository) ListByRange(ctx context.Context, specialistID int64, from, to time.Time, onlyAvailable bool) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "specialist_id", "date", "start_time", "end_time", "is_available").
		From("availability_slots").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		Where(squirrel.GtOrEq{"date": domain.DateOf(from)}).
		Where(squirrel.LtOrEq{"date": domain.DateOf(to)}).
		OrderBy("date ASC", "start_time ASC")

	if onlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	if err := sqlx.StructScan(rows, &slots); err != nil {
		return nil, fmt.Errorf("%w: ListByRange - struct scan: %w", ErrScanRow, err)
	}

	result := make([]*domain.AvailabilitySlot, 0, len(slots))
	for i := range slots {
		result = append(result, &slots[i])
	}

	return result, nil
}
