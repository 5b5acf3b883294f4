package create_exception

import (
	"context"

	createException "github.com/m04kA/SMC-CalendarService/internal/usecase/create_exception"
)

type CreateExceptionUseCase interface {
	Execute(ctx context.Context, req *createException.Request) (*createException.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
