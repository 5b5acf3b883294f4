package delete_event

import (
	"context"

	deleteEvent "github.com/m04kA/SMC-CalendarService/internal/usecase/delete_event"
)

type DeleteEventUseCase interface {
	Execute(ctx context.Context, req *deleteEvent.Request) (*deleteEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
