package list_events

import (
	"context"

	listEvents "github.com/m04kA/SMC-CalendarService/internal/usecase/list_events"
)

type ListEventsUseCase interface {
	Execute(ctx context.Context, req *listEvents.Request) (*listEvents.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
