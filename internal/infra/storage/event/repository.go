package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

const table = "calendar_events"

var selectColumns = []string{
	"id",
	"specialist_id",
	"title",
	"description",
	"location",
	"start_datetime",
	"end_datetime",
	"is_all_day",
	"timezone",
	"event_type",
	"category",
	"priority",
	"color",
	"visibility",
	"is_bookable",
	"max_bookings",
	"buffer_before",
	"buffer_after",
	"is_recurring",
	"recurrence_rule",
	"series_id",
	"is_base_instance",
	"original_start",
	"status",
	"is_active",
	"created_at",
	"updated_at",
}

var insertColumns = selectColumns[1:25]

// Repository репозиторий событий календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func insertValues(e *domain.CalendarEvent) []interface{} {
	return []interface{}{
		e.SpecialistID,
		e.Title,
		e.Description,
		e.Location,
		e.Start,
		e.End,
		e.IsAllDay,
		e.Timezone,
		e.EventType,
		e.Category,
		e.Priority,
		e.Color,
		e.Visibility,
		e.IsBookable,
		e.MaxBookings,
		e.BufferBefore,
		e.BufferAfter,
		e.IsRecurring,
		e.RecurrenceRule,
		e.SeriesID,
		e.IsBaseInstance,
		e.OriginalStart,
		e.Status,
		e.IsActive,
	}
}

// Create создает событие
func (r *Repository) Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(insertColumns...).
		Values(insertValues(e)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// CreateBatch создает несколько событий одним запросом и проставляет им ID
// Используется для материализации повторений серии
func (r *Repository) CreateBatch(ctx context.Context, events []*domain.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(table).Columns(insertColumns...)
	for _, e := range events {
		builder = builder.Values(insertValues(e)...)
	}

	query, args, err := builder.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(events) {
			return fmt.Errorf("%w: CreateBatch - more ids returned than rows inserted", ErrScanRow)
		}
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&events[i].ID, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("%w: CreateBatch - scan id: %w", ErrScanRow, err)
		}
		events[i].CreatedAt = createdAt.Time
		events[i].UpdatedAt = updatedAt.Time
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: CreateBatch - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// GetByID получает событие по ID (включая неактивные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку, чтобы патч серии не гонялся с правкой экземпляра
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	e, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %w", ErrScanRow, err)
	}
	return e, nil
}

// GetByIDs получает события по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.CalendarEvent, error) {
	if len(ids) == 0 {
		return []*domain.CalendarEvent{}, nil
	}

	builder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("start_datetime ASC")

	return r.query(ctx, "GetByIDs", builder)
}

// ListOverlapping получает активные события специалиста, пересекающие окно
func (r *Repository) ListOverlapping(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"specialist_id": specialistID, "is_active": true}).
		Where(squirrel.Lt{"start_datetime": window.End}).
		Where(squirrel.Gt{"end_datetime": window.Start}).
		OrderBy("start_datetime ASC")

	return r.query(ctx, "ListOverlapping", builder)
}

// List получает события специалиста по фильтру календарного представления
func (r *Repository) List(ctx context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"specialist_id": filter.SpecialistID})

	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"end_datetime": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_datetime": *filter.To})
	}
	if filter.Visibility != nil {
		builder = builder.Where(squirrel.Eq{"visibility": *filter.Visibility})
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		builder = builder.Where(squirrel.Eq{"event_type": types})
	}
	if len(filter.Categories) > 0 {
		builder = builder.Where(squirrel.Eq{"category": filter.Categories})
	}

	return r.query(ctx, "List", builder.OrderBy("start_datetime ASC"))
}

// ListBySeries получает активные события серии
func (r *Repository) ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]*domain.CalendarEvent, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"series_id": seriesID, "is_active": true}).
		OrderBy("start_datetime ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "ListBySeries", builder)
}

// Update перезаписывает изменяемые поля события
func (r *Repository) Update(ctx context.Context, e *domain.CalendarEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("title", e.Title).
		Set("description", e.Description).
		Set("location", e.Location).
		Set("start_datetime", e.Start).
		Set("end_datetime", e.End).
		Set("is_all_day", e.IsAllDay).
		Set("timezone", e.Timezone).
		Set("event_type", e.EventType).
		Set("category", e.Category).
		Set("priority", e.Priority).
		Set("color", e.Color).
		Set("visibility", e.Visibility).
		Set("is_bookable", e.IsBookable).
		Set("max_bookings", e.MaxBookings).
		Set("buffer_before", e.BufferBefore).
		Set("buffer_after", e.BufferAfter).
		Set("status", e.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Update", query, args)
}

// Deactivate мягко удаляет одно событие
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Deactivate", query, args)
}

// DeactivateSeries мягко удаляет все активные события серии, возвращает их количество
func (r *Repository) DeactivateSeries(ctx context.Context, seriesID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"series_id": seriesID, "is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateSeries - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateSeries - execute update: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateSeries - get rows affected: %w", ErrExecQuery, err)
	}
	return affected, nil
}

func (r *Repository) execAffecting(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.CalendarEvent, error) {
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

	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan event: %w", ErrScanRow, op, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return events, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(s scanner) (*domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	var createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&e.ID,
		&e.SpecialistID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.Start,
		&e.End,
		&e.IsAllDay,
		&e.Timezone,
		&e.EventType,
		&e.Category,
		&e.Priority,
		&e.Color,
		&e.Visibility,
		&e.IsBookable,
		&e.MaxBookings,
		&e.BufferBefore,
		&e.BufferAfter,
		&e.IsRecurring,
		&e.RecurrenceRule,
		&e.SeriesID,
		&e.IsBaseInstance,
		&e.OriginalStart,
		&e.Status,
		&e.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	return &e, nil
}
