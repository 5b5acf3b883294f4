package models

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модели

// UpdatePreferencesRequest запрос на обновление настроек планирования
// Незаданные поля сохраняют текущее значение
type UpdatePreferencesRequest struct {
	DefaultBufferBefore *int    `json:"defaultBufferBefore,omitempty"`
	DefaultBufferAfter  *int    `json:"defaultBufferAfter,omitempty"`
	AdvanceBookingDays  *int    `json:"advanceBookingDays,omitempty"`
	MinBookingNotice    *int    `json:"minBookingNotice,omitempty"`
	MaxDailyBookings    *int    `json:"maxDailyBookings,omitempty"`
	MaxWeeklyBookings   *int    `json:"maxWeeklyBookings,omitempty"`
	MinimumSlotDuration *int    `json:"minimumSlotDuration,omitempty"`
	SlotIncrement       *int    `json:"slotIncrement,omitempty"`
	LunchBreakStart     *string `json:"lunchBreakStart,omitempty"` // "13:00"
	LunchBreakDuration  *int    `json:"lunchBreakDuration,omitempty"`
}

// TimeRangeDTO диапазон времени в пределах дня
type TimeRangeDTO struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "13:00"
}

// WorkingDayRequest рабочие часы на день недели (0 = понедельник)
type WorkingDayRequest struct {
	DayOfWeek     int            `json:"dayOfWeek"`
	TimeRanges    []TimeRangeDTO `json:"timeRanges"`
	IsWorkingDay  *bool          `json:"isWorkingDay,omitempty"`
	BreakStart    *string        `json:"breakStart,omitempty"`
	BreakDuration int            `json:"breakDuration"`
	EffectiveDate *string        `json:"effectiveDate,omitempty"` // "2025-01-06"
}

// ReplaceWorkingHoursRequest полная замена набора рабочих часов
type ReplaceWorkingHoursRequest struct {
	Days []WorkingDayRequest `json:"days"`
}

// Response модели

// PreferencesResponse настройки планирования специалиста
type PreferencesResponse struct {
	SpecialistID        int64   `json:"specialistId"`
	DefaultBufferBefore int     `json:"defaultBufferBefore"`
	DefaultBufferAfter  int     `json:"defaultBufferAfter"`
	AdvanceBookingDays  int     `json:"advanceBookingDays"`
	MinBookingNotice    int     `json:"minBookingNotice"`
	MaxDailyBookings    *int    `json:"maxDailyBookings,omitempty"`
	MaxWeeklyBookings   *int    `json:"maxWeeklyBookings,omitempty"`
	MinimumSlotDuration int     `json:"minimumSlotDuration"`
	SlotIncrement       int     `json:"slotIncrement"`
	LunchBreakStart     *string `json:"lunchBreakStart,omitempty"`
	LunchBreakDuration  int     `json:"lunchBreakDuration"`
	IsDefault           bool    `json:"isDefault"` // true, если настройки не сохранены
}

// WorkingDayResponse рабочие часы на день недели
type WorkingDayResponse struct {
	ID            int64          `json:"id"`
	DayOfWeek     int            `json:"dayOfWeek"`
	TimeRanges    []TimeRangeDTO `json:"timeRanges"`
	IsWorkingDay  bool           `json:"isWorkingDay"`
	BreakStart    *string        `json:"breakStart,omitempty"`
	BreakDuration int            `json:"breakDuration"`
	EffectiveDate *string        `json:"effectiveDate,omitempty"`
}

// WorkingHoursResponse набор рабочих часов специалиста
type WorkingHoursResponse struct {
	SpecialistID int64                `json:"specialistId"`
	Days         []WorkingDayResponse `json:"days"`
}

// Методы конвертации

// FromDomainPreferences конвертирует domain модель в DTO
func FromDomainPreferences(p *domain.SchedulingPreferences, isDefault bool) *PreferencesResponse {
	resp := &PreferencesResponse{
		SpecialistID:        p.SpecialistID,
		DefaultBufferBefore: p.DefaultBufferBefore,
		DefaultBufferAfter:  p.DefaultBufferAfter,
		AdvanceBookingDays:  p.AdvanceBookingDays,
		MinBookingNotice:    p.MinBookingNotice,
		MaxDailyBookings:    p.MaxDailyBookings,
		MaxWeeklyBookings:   p.MaxWeeklyBookings,
		MinimumSlotDuration: p.MinimumSlotDuration,
		SlotIncrement:       p.SlotIncrement,
		LunchBreakDuration:  p.LunchBreakDuration,
		IsDefault:           isDefault,
	}
	if p.LunchBreakStart != nil {
		s := p.LunchBreakStart.String()
		resp.LunchBreakStart = &s
	}
	return resp
}

// FromDomainWorkingHours конвертирует список domain моделей в DTO
func FromDomainWorkingHours(specialistID int64, hours []*domain.WorkingHours) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		SpecialistID: specialistID,
		Days:         make([]WorkingDayResponse, 0, len(hours)),
	}

	for _, wh := range hours {
		day := WorkingDayResponse{
			ID:            wh.ID,
			DayOfWeek:     wh.DayOfWeek,
			TimeRanges:    make([]TimeRangeDTO, 0, len(wh.TimeRanges)),
			IsWorkingDay:  wh.IsWorkingDay,
			BreakDuration: wh.BreakDuration,
		}
		for _, r := range wh.TimeRanges {
			day.TimeRanges = append(day.TimeRanges, TimeRangeDTO{Start: r.Start.String(), End: r.End.String()})
		}
		if wh.BreakStart != nil {
			s := wh.BreakStart.String()
			day.BreakStart = &s
		}
		if wh.EffectiveDate != nil {
			s := wh.EffectiveDate.Format(domain.DateFormat)
			day.EffectiveDate = &s
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}

// ParseEffectiveDate парсит дату вступления в силу, если она указана
func ParseEffectiveDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
