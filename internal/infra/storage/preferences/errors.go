package preferences

import "errors"

var (
	// ErrPreferencesNotFound возвращается, когда у специалиста нет сохраненных настроек
	ErrPreferencesNotFound = errors.New("preferences.repository: preferences not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("preferences.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("preferences.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("preferences.repository: failed to scan row")

	// ErrEncodeRanges возвращается при ошибке (де)сериализации time_ranges
	ErrEncodeRanges = errors.New("preferences.repository: failed to encode time ranges")
)
