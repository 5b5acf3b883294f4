package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-CalendarService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSpecialistNotFound  = "специалист не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotOffered   = "специалист не оказывает эту услугу"
	msgDateInPast          = "дата в прошлом"
	msgInvalidParams       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/slots
// Query params: date (required, YYYY-MM-DD), serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/slots - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr != "" {
		if _, err := strconv.ParseInt(serviceIDStr, 10, 64); err != nil {
			h.logger.Warn("GET /specialists/{id}/slots - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /specialists/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(specialistID, serviceIDStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSpecialistNotFound):
			h.logger.Warn("GET /specialists/{id}/slots - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /specialists/{id}/slots - Service not found: specialist_id=%d, service_id=%s",
				specialistID, serviceIDStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotOffered):
			h.logger.Warn("GET /specialists/{id}/slots - Service not offered: specialist_id=%d, service_id=%s",
				specialistID, serviceIDStr)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /specialists/{id}/slots - Date in past: specialist_id=%d, date=%s", specialistID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /specialists/{id}/slots - Failed to get slots: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/slots - Slots retrieved successfully: specialist_id=%d, date=%s, slots_count=%d",
		specialistID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
