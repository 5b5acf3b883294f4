package create_event

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("create_event: specialist not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_event: invalid input data")

	// ErrInvalidTimeRange возвращается, когда конец события не позже начала
	ErrInvalidTimeRange = errors.New("create_event: end must be after start")

	// ErrInvalidRule возвращается при неподдерживаемом или некорректном правиле повторения
	ErrInvalidRule = errors.New("create_event: invalid recurrence rule")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_event: internal error")
)
