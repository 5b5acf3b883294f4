package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a reservation of a specialist's time by a consumer for a service
type Booking struct {
	ID           int64
	SpecialistID int64
	ServiceID    int64
	ConsumerID   *int64 // nil for legacy rows keyed only by raw contact fields

	// Contact snapshot as entered by the client
	ClientName  string
	ClientEmail *string
	ClientPhone *string

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    BookingStatus
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booking window on its date
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime.On(b.Date), End: b.EndTime.On(b.Date)}
}

// IsConfirmed returns true if the booking still holds the slot
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is allowed.
// Transitions are one-way: confirmed -> completed or confirmed -> cancelled.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	return b.Status == StatusConfirmed && (next == StatusCompleted || next == StatusCancelled)
}

// String implements fmt.Stringer
func (b *Booking) String() string {
	return fmt.Sprintf("booking#%d specialist=%d %s %s-%s %s",
		b.ID, b.SpecialistID, b.Date.Format(DateFormat), b.StartTime, b.EndTime, b.Status)
}

// BookingsFilter фильтр для получения бронирований специалиста
type BookingsFilter struct {
	SpecialistID int64          // 0 = все специалисты (используется аудитом)
	StartDate    *time.Time     // Начало периода (опционально)
	EndDate      *time.Time     // Конец периода (опционально)
	Status       *BookingStatus // Фильтр по статусу (опционально)
}
