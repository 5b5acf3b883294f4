package create_exception

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено или удалено
	ErrEventNotFound = errors.New("create_exception: event not found")

	// ErrOccurrenceNotFound возвращается, когда у серии нет повторения на указанную дату
	ErrOccurrenceNotFound = errors.New("create_exception: no occurrence on the given date")

	// ErrNotRecurring возвращается для события вне серии
	ErrNotRecurring = errors.New("create_exception: event is not part of a recurring series")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_exception: invalid input data")

	// ErrInvalidTimeRange возвращается, если новый конец не позже нового начала
	ErrInvalidTimeRange = errors.New("create_exception: new end must be after new start")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_exception: internal error")
)
