package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

// Repository читает специалистов и их услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSpecialist получает специалиста по ID
func (r *Repository) GetSpecialist(ctx context.Context, id int64) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone").
		From("specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialist - build select query: %w", ErrBuildQuery, err)
	}

	var specialist domain.Specialist
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&specialist.ID,
		&specialist.Name,
		&specialist.Email,
		&specialist.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialist - scan specialist: %w", ErrScanRow, err)
	}

	return &specialist, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "specialist_id", "name", "price", "duration_minutes").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %w", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.SpecialistID,
		&service.Name,
		&service.Price,
		&service.DurationMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return &service, nil
}

// ShortestServiceDuration минимальная длительность услуг специалиста в минутах.
// Возвращает 0, если у специалиста нет услуг.
func (r *Repository) ShortestServiceDuration(ctx context.Context, specialistID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MIN(duration_minutes)").
		From("services").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ShortestServiceDuration - build select query: %w", ErrBuildQuery, err)
	}

	var minutes sql.NullInt64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("%w: ShortestServiceDuration - scan: %w", ErrScanRow, err)
	}

	return int(minutes.Int64), nil
}
