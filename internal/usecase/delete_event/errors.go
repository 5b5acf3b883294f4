package delete_event

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено или уже удалено
	ErrEventNotFound = errors.New("delete_event: event not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_event: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_event: internal error")
)
