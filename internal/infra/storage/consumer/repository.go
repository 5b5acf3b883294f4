package consumer

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

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByNormalizedContact ищет клиента по нормализованному email или телефону.
// Совпадение по email приоритетнее совпадения по телефону.
// Пустые значения в поиске не участвуют.
func (r *Repository) FindByNormalizedContact(ctx context.Context, email, phone string) (*domain.Consumer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	match := squirrel.Or{}
	if email != "" {
		match = append(match, squirrel.Eq{"email_normalized": email})
	}
	if phone != "" {
		match = append(match, squirrel.Eq{"phone_normalized": phone})
	}
	if len(match) == 0 {
		return nil, ErrConsumerNotFound
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"phone",
		"email_normalized",
		"phone_normalized",
		"created_at",
	).
		From("consumers").
		Where(match).
		Limit(1)

	// Первым идет совпадение по email
	if email != "" {
		selectBuilder = selectBuilder.
			OrderByClause("CASE WHEN email_normalized = ? THEN 0 ELSE 1 END", email)
	}
	selectBuilder = selectBuilder.OrderBy("id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByNormalizedContact - build select query: %w", ErrBuildQuery, err)
	}

	var consumer domain.Consumer
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&consumer.ID,
		&consumer.Name,
		&consumer.Email,
		&consumer.Phone,
		&consumer.EmailNormalized,
		&consumer.PhoneNormalized,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConsumerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByNormalizedContact - scan consumer: %w", ErrScanRow, err)
	}
	consumer.CreatedAt = createdAt.Time

	return &consumer, nil
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, consumer *domain.Consumer) (*domain.Consumer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consumers").
		Columns(
			"name",
			"email",
			"phone",
			"email_normalized",
			"phone_normalized",
		).
		Values(
			consumer.Name,
			consumer.Email,
			consumer.Phone,
			consumer.EmailNormalized,
			consumer.PhoneNormalized,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&consumer.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	consumer.CreatedAt = createdAt.Time

	return consumer, nil
}
