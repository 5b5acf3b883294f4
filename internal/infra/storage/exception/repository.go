package exception

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var selectColumns = []string{
	"x.id",
	"x.event_id",
	"x.exception_date",
	"x.exception_type",
	"x.new_start_datetime",
	"x.new_end_datetime",
	"x.new_title",
	"x.new_description",
	"x.created_at",
}

// Repository репозиторий исключений повторяющихся событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет исключение; существующее исключение на ту же дату перезаписывается
func (r *Repository) Upsert(ctx context.Context, exc *domain.EventException) (*domain.EventException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_exceptions").
		Columns(
			"event_id",
			"exception_date",
			"exception_type",
			"new_start_datetime",
			"new_end_datetime",
			"new_title",
			"new_description",
		).
		Values(
			exc.EventID,
			exc.ExceptionDate,
			exc.Type,
			exc.NewStart,
			exc.NewEnd,
			exc.NewTitle,
			exc.NewDescription,
		).
		Suffix(`ON CONFLICT (event_id, exception_date) DO UPDATE SET
			exception_type = EXCLUDED.exception_type,
			new_start_datetime = EXCLUDED.new_start_datetime,
			new_end_datetime = EXCLUDED.new_end_datetime,
			new_title = EXCLUDED.new_title,
			new_description = EXCLUDED.new_description,
			created_at = NOW()
		RETURNING id, created_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}
	exc.CreatedAt = createdAt.Time

	return exc, nil
}

// GetByEventDate получает исключение события на дату повторения
// В транзакции строка блокируется до ее завершения.
func (r *Repository) GetByEventDate(ctx context.Context, eventID int64, date time.Time) (*domain.EventException, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From("event_exceptions x").
		Where(squirrel.Eq{"x.event_id": eventID, "x.exception_date": domain.DateOf(date)})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	found, err := r.query(ctx, "GetByEventDate", builder)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrExceptionNotFound
	}
	return found[0], nil
}

// ListByEventIDs получает исключения для набора событий
func (r *Repository) ListByEventIDs(ctx context.Context, eventIDs []int64) ([]*domain.EventException, error) {
	if len(eventIDs) == 0 {
		return []*domain.EventException{}, nil
	}

	builder := psqlbuilder.Select(selectColumns...).
		From("event_exceptions x").
		Where(squirrel.Eq{"x.event_id": eventIDs}).
		OrderBy("x.created_at ASC")

	return r.query(ctx, "ListByEventIDs", builder)
}

// ListInWindow получает исключения событий специалиста, у которых либо дата
// попадает в окно, либо новое время пересекает окно
func (r *Repository) ListInWindow(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.EventException, error) {
	fromDate := domain.DateOf(window.Start)
	toDate := domain.DateOf(window.End)

	builder := psqlbuilder.Select(selectColumns...).
		From("event_exceptions x").
		Join("calendar_events e ON e.id = x.event_id").
		Where(squirrel.Eq{"e.specialist_id": specialistID, "e.is_active": true}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.GtOrEq{"x.exception_date": fromDate},
				squirrel.LtOrEq{"x.exception_date": toDate},
			},
			squirrel.And{
				squirrel.Lt{"x.new_start_datetime": window.End},
				squirrel.Gt{"x.new_end_datetime": window.Start},
			},
		}).
		OrderBy("x.created_at ASC")

	return r.query(ctx, "ListInWindow", builder)
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.EventException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.EventException, 0)
	for rows.Next() {
		var exc domain.EventException
		var createdAt sql.NullTime
		if err := rows.Scan(
			&exc.ID,
			&exc.EventID,
			&exc.ExceptionDate,
			&exc.Type,
			&exc.NewStart,
			&exc.NewEnd,
			&exc.NewTitle,
			&exc.NewDescription,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan exception: %w", ErrScanRow, op, err)
		}
		exc.CreatedAt = createdAt.Time
		result = append(result, &exc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}
