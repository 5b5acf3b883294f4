package create_exception

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	createException "github.com/m04kA/SMC-CalendarService/internal/usecase/create_exception"
)

const (
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени"
	msgEventNotFound      = "событие не найдено"
	msgOccurrenceNotFound = "повторение на указанную дату не найдено"
	msgNotRecurring       = "событие не является повторяющимся"
	msgInvalidTimeRange   = "окончание должно быть позже начала"
	msgInvalidInput       = "некорректные данные исключения"
)

type Handler struct {
	useCase CreateExceptionUseCase
	logger  Logger
}

func NewHandler(useCase CreateExceptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events/{eventId}/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.PathID(r, "eventId")
	if err != nil {
		h.logger.Warn("POST /events/{id}/exceptions - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events/{id}/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(eventID)
	if err != nil {
		h.logger.Warn("POST /events/{id}/exceptions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createException.ErrEventNotFound):
			h.logger.Warn("POST /events/{id}/exceptions - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createException.ErrOccurrenceNotFound):
			h.logger.Warn("POST /events/{id}/exceptions - Occurrence not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgOccurrenceNotFound)

		case errors.Is(err, createException.ErrNotRecurring):
			h.logger.Warn("POST /events/{id}/exceptions - Event is not recurring: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgNotRecurring)

		case errors.Is(err, createException.ErrInvalidTimeRange):
			h.logger.Warn("POST /events/{id}/exceptions - Invalid time range: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createException.ErrInvalidInput):
			h.logger.Warn("POST /events/{id}/exceptions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /events/{id}/exceptions - Failed to create exception: event_id=%d, error=%v",
				eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events/{id}/exceptions - Exception recorded: event_id=%d, date=%s, type=%s",
		result.Exception.EventID, result.Exception.ExceptionDate.Format("2006-01-02"), result.Exception.Type)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainException(result.Exception))
}
