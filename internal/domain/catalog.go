package domain

// Specialist is a service professional owning services and a calendar
type Specialist struct {
	ID    int64
	Name  string
	Email string
	Phone *string
}

// Service is something a specialist offers for booking
type Service struct {
	ID              int64
	SpecialistID    int64
	Name            string
	Price           float64
	DurationMinutes int
}

// BelongsTo reports whether the service is offered by the specialist
func (s *Service) BelongsTo(specialistID int64) bool {
	return s.SpecialistID == specialistID
}
