package update_event

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено или удалено
	ErrEventNotFound = errors.New("update_event: event not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_event: invalid input data")

	// ErrInvalidTimeRange возвращается, когда после изменения конец не позже начала
	ErrInvalidTimeRange = errors.New("update_event: end must be after start")

	// ErrEmptyPatch возвращается, когда в запросе нет ни одного изменения
	ErrEmptyPatch = errors.New("update_event: nothing to update")

	// ErrOccurrenceCancelled возвращается при изменении отмененного повторения серии
	ErrOccurrenceCancelled = errors.New("update_event: occurrence is cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_event: internal error")
)
