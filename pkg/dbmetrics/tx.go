package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// SqlTxWrapper транзакция с метриками запросов
type SqlTxWrapper struct {
	tx *sql.Tx
	db *DB
}

// ExecContext выполняет запрос в транзакции
func (t *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.db.observe(query, start, err)
	return res, err
}

// QueryContext выполняет запрос в транзакции
func (t *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.db.observe(query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос в транзакции
func (t *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.db.observe(query, start, row.Err())
	return row
}

// Commit фиксирует транзакцию
func (t *SqlTxWrapper) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *SqlTxWrapper) Rollback() error {
	return t.tx.Rollback()
}
