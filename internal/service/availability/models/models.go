package models

import (
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на добавление слота доступности
type CreateSlotRequest struct {
	Date        string `json:"date"`      // "2025-01-06"
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "12:00"
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// Response модели

// SlotResponse слот доступности
type SlotResponse struct {
	ID           int64  `json:"id"`
	SpecialistID int64  `json:"specialistId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsAvailable  bool   `json:"isAvailable"`
}

// SlotListResponse список слотов доступности
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		ID:           s.ID,
		SpecialistID: s.SpecialistID,
		Date:         s.Date.Format(domain.DateFormat),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		IsAvailable:  s.IsAvailable,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(s))
	}
	return resp
}
