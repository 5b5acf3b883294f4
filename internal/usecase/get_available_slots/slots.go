package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// busyIntervals интервалы подтвержденных бронирований.
// Граничащие интервалы не пересекаются: бронирование 11:00-11:30 не мешает слоту 11:30-12:00.
func busyIntervals(bookings []*domain.Booking) []domain.Interval {
	busy := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		busy = append(busy, b.Interval())
	}
	return busy
}

// toSlots переводит интервалы в ответ, отбрасывая слоты, начало которых уже прошло
func toSlots(intervals []domain.Interval, now time.Time) []Slot {
	result := make([]Slot, 0, len(intervals))
	for _, in := range intervals {
		if in.Start.Before(now) {
			continue
		}
		result = append(result, Slot{
			StartTime: types.NewTimeString(in.Start),
			EndTime:   types.NewTimeString(in.End),
		})
	}
	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
