package audit

import (
	"sort"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Overlap пара подтвержденных бронирований одного специалиста с пересекающимся временем
type Overlap struct {
	First  *domain.Booking
	Second *domain.Booking
}

// FindOverlaps ищет пересечения подтвержденных бронирований внутри каждого специалиста.
// Неподтвержденные бронирования пропускаются, касание границ пересечением не считается.
func FindOverlaps(bookings []*domain.Booking) []Overlap {
	bySpecialist := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		bySpecialist[b.SpecialistID] = append(bySpecialist[b.SpecialistID], b)
	}

	specialists := make([]int64, 0, len(bySpecialist))
	for id := range bySpecialist {
		specialists = append(specialists, id)
	}
	sort.Slice(specialists, func(i, j int) bool { return specialists[i] < specialists[j] })

	var result []Overlap
	for _, id := range specialists {
		list := bySpecialist[id]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Interval().Start.Before(list[j].Interval().Start)
		})

		// Список отсортирован по началу: сравниваем только с теми, кто начался раньше конца текущего
		for i := 0; i < len(list); i++ {
			current := list[i].Interval()
			for j := i + 1; j < len(list); j++ {
				next := list[j].Interval()
				if !next.Start.Before(current.End) {
					break
				}
				if domain.Overlaps(current, next) {
					result = append(result, Overlap{First: list[i], Second: list[j]})
				}
			}
		}
	}
	return result
}
