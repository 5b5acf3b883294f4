package delete_event

// Request модель запроса на удаление события
type Request struct {
	EventID      int64
	DeleteSeries bool // true - удалить всю серию события
}

// Response модель ответа
type Response struct {
	Deactivated int64 // Количество деактивированных строк
}
