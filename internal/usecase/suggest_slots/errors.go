package suggest_slots

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("suggest_slots: specialist not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("suggest_slots: invalid input data")

	// ErrInvalidTimeRange возвращается, если конец диапазона не позже начала
	ErrInvalidTimeRange = errors.New("suggest_slots: end must be after start")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("suggest_slots: internal error")
)
