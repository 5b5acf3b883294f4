package consumer

import "errors"

var (
	// ErrConsumerNotFound возвращается, когда клиент не найден
	ErrConsumerNotFound = errors.New("consumer.repository: consumer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("consumer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("consumer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("consumer.repository: failed to scan row")
)
