package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CalendarService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CalendarService/internal/infra/storage/consumer"
	"github.com/m04kA/SMC-CalendarService/internal/infra/storage/event"
	"github.com/m04kA/SMC-CalendarService/internal/infra/storage/exception"
	"github.com/m04kA/SMC-CalendarService/internal/infra/storage/preferences"
)

// Store is an in-memory stand-in for the PostgreSQL repositories.
// Each field mirrors one repository and reports the same sentinel errors.
type Store struct {
	Events       *EventStore
	Exceptions   *ExceptionStore
	Bookings     *BookingStore
	Consumers    *ConsumerStore
	Catalog      *CatalogStore
	Availability *AvailabilityStore
	Preferences  *PreferencesStore
}

// NewStore returns an empty store
func NewStore() *Store {
	events := &EventStore{rows: make(map[int64]*domain.CalendarEvent)}
	return &Store{
		Events:       events,
		Exceptions:   &ExceptionStore{events: events, rows: make(map[excKey]*domain.EventException)},
		Bookings:     &BookingStore{rows: make(map[int64]*domain.Booking)},
		Consumers:    &ConsumerStore{rows: make(map[int64]*domain.Consumer)},
		Catalog:      &CatalogStore{specialists: make(map[int64]*domain.Specialist), services: make(map[int64]*domain.Service)},
		Availability: &AvailabilityStore{},
		Preferences:  &PreferencesStore{prefs: make(map[int64]*domain.SchedulingPreferences), hours: make(map[int64][]*domain.WorkingHours)},
	}
}

// ---- events ----

// EventStore in-memory calendar_events
type EventStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.CalendarEvent
}

func (s *EventStore) insert(e *domain.CalendarEvent) {
	s.nextID++
	e.ID = s.nextID
	e.CreatedAt = ReferenceTime()
	e.UpdatedAt = e.CreatedAt
	s.rows[e.ID] = e.Clone()
}

func (s *EventStore) Create(_ context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(e)
	return e, nil
}

func (s *EventStore) CreateBatch(_ context.Context, events []*domain.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		s.insert(e)
	}
	return nil
}

func (s *EventStore) GetByID(_ context.Context, id int64) (*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.rows[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return e.Clone(), nil
}

func (s *EventStore) GetByIDs(_ context.Context, ids []int64) ([]*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return s.collect(func(e *domain.CalendarEvent) bool {
		_, ok := want[e.ID]
		return ok
	}), nil
}

func (s *EventStore) ListOverlapping(_ context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(e *domain.CalendarEvent) bool {
		return e.SpecialistID == specialistID && e.IsActive && domain.Overlaps(e.Interval(), window)
	}), nil
}

func (s *EventStore) List(_ context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(e *domain.CalendarEvent) bool {
		if e.SpecialistID != filter.SpecialistID {
			return false
		}
		if !filter.IncludeInactive && !e.IsActive {
			return false
		}
		if filter.From != nil && !e.End.After(*filter.From) {
			return false
		}
		if filter.To != nil && !e.Start.Before(*filter.To) {
			return false
		}
		if filter.Visibility != nil && e.Visibility != *filter.Visibility {
			return false
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, e.EventType) {
			return false
		}
		if len(filter.Categories) > 0 && (e.Category == nil || !containsString(filter.Categories, *e.Category)) {
			return false
		}
		return true
	}), nil
}

func (s *EventStore) ListBySeries(_ context.Context, seriesID uuid.UUID) ([]*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(e *domain.CalendarEvent) bool {
		return e.IsActive && e.SeriesID.Valid && e.SeriesID.UUID == seriesID
	}), nil
}

func (s *EventStore) Update(_ context.Context, e *domain.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.rows[e.ID]
	if !ok {
		return event.ErrEventNotFound
	}
	updated := e.Clone()
	// Колонки серии и активность через Update не меняются
	updated.SpecialistID = stored.SpecialistID
	updated.IsRecurring = stored.IsRecurring
	updated.RecurrenceRule = stored.RecurrenceRule
	updated.SeriesID = stored.SeriesID
	updated.IsBaseInstance = stored.IsBaseInstance
	updated.OriginalStart = stored.OriginalStart
	updated.IsActive = stored.IsActive
	updated.CreatedAt = stored.CreatedAt
	s.rows[e.ID] = updated
	return nil
}

func (s *EventStore) Deactivate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.rows[id]
	if !ok || !e.IsActive {
		return event.ErrEventNotFound
	}
	e.IsActive = false
	return nil
}

func (s *EventStore) DeactivateSeries(_ context.Context, seriesID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, e := range s.rows {
		if e.IsActive && e.SeriesID.Valid && e.SeriesID.UUID == seriesID {
			e.IsActive = false
			n++
		}
	}
	return n, nil
}

// All returns every stored row ordered by start, inactive included
func (s *EventStore) All() []*domain.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(*domain.CalendarEvent) bool { return true })
}

func (s *EventStore) collect(keep func(e *domain.CalendarEvent) bool) []*domain.CalendarEvent {
	result := make([]*domain.CalendarEvent, 0)
	for _, e := range s.rows {
		if keep(e) {
			result = append(result, e.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result
}

// ---- exceptions ----

type excKey struct {
	eventID int64
	date    time.Time
}

// ExceptionStore in-memory event_exceptions with (event_id, exception_date) uniqueness
type ExceptionStore struct {
	mu     sync.Mutex
	nextID int64
	events *EventStore
	rows   map[excKey]*domain.EventException
}

func (s *ExceptionStore) Upsert(_ context.Context, exc *domain.EventException) (*domain.EventException, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := excKey{eventID: exc.EventID, date: domain.DateOf(exc.ExceptionDate)}
	if prev, ok := s.rows[key]; ok {
		exc.ID = prev.ID
	} else {
		s.nextID++
		exc.ID = s.nextID
	}
	exc.CreatedAt = ReferenceTime()
	stored := *exc
	s.rows[key] = &stored
	return exc, nil
}

func (s *ExceptionStore) GetByEventDate(_ context.Context, eventID int64, date time.Time) (*domain.EventException, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exc, ok := s.rows[excKey{eventID: eventID, date: domain.DateOf(date)}]
	if !ok {
		return nil, exception.ErrExceptionNotFound
	}
	c := *exc
	return &c, nil
}

func (s *ExceptionStore) ListByEventIDs(_ context.Context, eventIDs []int64) ([]*domain.EventException, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[int64]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		want[id] = struct{}{}
	}
	return s.collect(func(exc *domain.EventException) bool {
		_, ok := want[exc.EventID]
		return ok
	}), nil
}

func (s *ExceptionStore) ListInWindow(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.EventException, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromDate := domain.DateOf(window.Start)
	toDate := domain.DateOf(window.End)
	return s.collect(func(exc *domain.EventException) bool {
		owner, err := s.events.GetByID(ctx, exc.EventID)
		if err != nil || owner.SpecialistID != specialistID || !owner.IsActive {
			return false
		}
		date := domain.DateOf(exc.ExceptionDate)
		if !date.Before(fromDate) && !date.After(toDate) {
			return true
		}
		return exc.NewStart != nil && exc.NewEnd != nil &&
			exc.NewStart.Before(window.End) && exc.NewEnd.After(window.Start)
	}), nil
}

// All returns every stored exception
func (s *ExceptionStore) All() []*domain.EventException {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(*domain.EventException) bool { return true })
}

func (s *ExceptionStore) collect(keep func(exc *domain.EventException) bool) []*domain.EventException {
	result := make([]*domain.EventException, 0)
	for _, exc := range s.rows {
		if keep(exc) {
			c := *exc
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ---- bookings ----

// BookingStore in-memory bookings; Create enforces the no-overlap constraint
type BookingStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Booking
	Locks  []string

	// CreateErr, when set, is returned by Create instead of storing the row
	CreateErr error
}

// Snapshot captures the rows; restore puts them back
func (s *BookingStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make(map[int64]*domain.Booking, len(s.rows))
	for id, b := range s.rows {
		c := *b
		rows[id] = &c
	}
	nextID := s.nextID
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows = rows
		s.nextID = nextID
	}
}

func (s *BookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if b.IsConfirmed() {
		for _, other := range s.rows {
			if other.SpecialistID == b.SpecialistID && other.IsConfirmed() &&
				domain.Overlaps(other.Interval(), b.Interval()) {
				return nil, booking.ErrSlotNotAvailable
			}
		}
	}
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = ReferenceTime()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	s.rows[b.ID] = &stored
	return b, nil
}

func (s *BookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	c := *b
	return &c, nil
}

func (s *BookingStore) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for _, b := range s.rows {
		if filter.SpecialistID != 0 && b.SpecialistID != filter.SpecialistID {
			continue
		}
		if filter.StartDate != nil && b.Date.Before(domain.DateOf(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && b.Date.After(domain.DateOf(*filter.EndDate)) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		c := *b
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SpecialistID != result[j].SpecialistID {
			return result[i].SpecialistID < result[j].SpecialistID
		}
		return result[i].Interval().Start.Before(result[j].Interval().Start)
	})
	return result, nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (s *BookingStore) LockSpecialistDay(_ context.Context, specialistID int64, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Locks = append(s.Locks, fmt.Sprintf("%d:%s", specialistID, domain.DateOf(date).Format(domain.DateFormat)))
	return nil
}

// Put stores a booking as is, bypassing the overlap check
func (s *BookingStore) Put(b *domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	stored := *b
	s.rows[b.ID] = &stored
	return b
}

// ---- consumers ----

// ConsumerStore in-memory consumers
type ConsumerStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Consumer
}

// Snapshot captures the rows; restore puts them back
func (s *ConsumerStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make(map[int64]*domain.Consumer, len(s.rows))
	for id, c := range s.rows {
		cp := *c
		rows[id] = &cp
	}
	nextID := s.nextID
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows = rows
		s.nextID = nextID
	}
}

func (s *ConsumerStore) FindByNormalizedContact(_ context.Context, email, phone string) (*domain.Consumer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var byPhone *domain.Consumer
	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		c := s.rows[id]
		if email != "" && c.EmailNormalized != nil && *c.EmailNormalized == email {
			found := *c
			return &found, nil
		}
		if byPhone == nil && phone != "" && c.PhoneNormalized != nil && *c.PhoneNormalized == phone {
			byPhone = c
		}
	}
	if byPhone != nil {
		found := *byPhone
		return &found, nil
	}
	return nil, consumer.ErrConsumerNotFound
}

func (s *ConsumerStore) Create(_ context.Context, c *domain.Consumer) (*domain.Consumer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	stored := *c
	s.rows[c.ID] = &stored
	return c, nil
}

// Count returns the number of stored consumers
func (s *ConsumerStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// ---- catalog ----

// CatalogStore in-memory specialists and services
type CatalogStore struct {
	mu          sync.Mutex
	specialists map[int64]*domain.Specialist
	services    map[int64]*domain.Service
}

// AddSpecialist stores a specialist
func (s *CatalogStore) AddSpecialist(sp *domain.Specialist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specialists[sp.ID] = sp
}

// AddService stores a service
func (s *CatalogStore) AddService(svc *domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *CatalogStore) GetSpecialist(_ context.Context, id int64) (*domain.Specialist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.specialists[id]
	if !ok {
		return nil, catalog.ErrSpecialistNotFound
	}
	c := *sp
	return &c, nil
}

func (s *CatalogStore) GetService(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	c := *svc
	return &c, nil
}

func (s *CatalogStore) ShortestServiceDuration(_ context.Context, specialistID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shortest := 0
	for _, svc := range s.services {
		if svc.SpecialistID != specialistID {
			continue
		}
		if shortest == 0 || svc.DurationMinutes < shortest {
			shortest = svc.DurationMinutes
		}
	}
	return shortest, nil
}

// ---- legacy availability slots ----

// AvailabilityStore in-memory availability_slots
type AvailabilityStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []*domain.AvailabilitySlot
}

func (s *AvailabilityStore) Create(_ context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	slot.ID = s.nextID
	stored := *slot
	s.rows = append(s.rows, &stored)
	return slot, nil
}

func (s *AvailabilityStore) ListByRange(_ context.Context, specialistID int64, from, to time.Time, onlyAvailable bool) ([]*domain.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromDate, toDate := domain.DateOf(from), domain.DateOf(to)
	result := make([]*domain.AvailabilitySlot, 0)
	for _, slot := range s.rows {
		if slot.SpecialistID != specialistID || slot.Date.Before(fromDate) || slot.Date.After(toDate) {
			continue
		}
		if onlyAvailable && !slot.IsAvailable {
			continue
		}
		c := *slot
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Interval().Start.Before(result[j].Interval().Start)
	})
	return result, nil
}

// ---- preferences and working hours ----

// PreferencesStore in-memory scheduling_preferences and working_hours
type PreferencesStore struct {
	mu     sync.Mutex
	nextID int64
	prefs  map[int64]*domain.SchedulingPreferences
	hours  map[int64][]*domain.WorkingHours
}

func (s *PreferencesStore) GetPreferences(_ context.Context, specialistID int64) (*domain.SchedulingPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prefs[specialistID]
	if !ok {
		return nil, preferences.ErrPreferencesNotFound
	}
	c := *p
	return &c, nil
}

func (s *PreferencesStore) UpsertPreferences(_ context.Context, p *domain.SchedulingPreferences) (*domain.SchedulingPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.prefs[p.SpecialistID]; ok {
		p.ID = prev.ID
		p.CreatedAt = prev.CreatedAt
	} else {
		s.nextID++
		p.ID = s.nextID
		p.CreatedAt = ReferenceTime()
	}
	p.UpdatedAt = ReferenceTime()
	stored := *p
	s.prefs[p.SpecialistID] = &stored
	return p, nil
}

func (s *PreferencesStore) ListWorkingHours(_ context.Context, specialistID int64) ([]*domain.WorkingHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.WorkingHours, 0, len(s.hours[specialistID]))
	for _, wh := range s.hours[specialistID] {
		c := *wh
		result = append(result, &c)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].DayOfWeek < result[j].DayOfWeek })
	return result, nil
}

func (s *PreferencesStore) ReplaceWorkingHours(_ context.Context, specialistID int64, hours []*domain.WorkingHours) ([]*domain.WorkingHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]*domain.WorkingHours, 0, len(hours))
	for _, wh := range hours {
		s.nextID++
		wh.ID = s.nextID
		wh.SpecialistID = specialistID
		wh.IsActive = true
		c := *wh
		stored = append(stored, &c)
	}
	s.hours[specialistID] = stored
	return hours, nil
}

func containsType(list []domain.EventType, t domain.EventType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
