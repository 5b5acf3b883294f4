package list_events

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_events: invalid input data")

	// ErrInvalidTimeRange возвращается, если конец периода не позже начала
	ErrInvalidTimeRange = errors.New("list_events: end must be after start")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_events: internal error")
)
