package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies a calendar event
type EventType string

const (
	EventTypeAvailability EventType = "availability"
	EventTypeBlock        EventType = "block"
	EventTypeAppointment  EventType = "appointment"
	EventTypeBreak        EventType = "break"
)

// IsValid reports whether t is a known event type
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeAvailability, EventTypeBlock, EventTypeAppointment, EventTypeBreak:
		return true
	}
	return false
}

// EventStatus lifecycle status of a calendar event
type EventStatus string

const (
	EventStatusTentative EventStatus = "tentative"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsValid reports whether s is a known event status
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusTentative, EventStatusConfirmed, EventStatusCancelled:
		return true
	}
	return false
}

// Visibility of an event in calendar views
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// IsValid reports whether v is a known visibility
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Priority of an event
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// CalendarEvent is a scheduling primitive owned by exactly one specialist.
//
// A recurring series is materialized at creation time: the base row keeps
// IsRecurring and the serialized RecurrenceRule, every generated instance is an
// ordinary row with IsRecurring=false and OriginalStart set. All rows of one
// series share SeriesID; the base row has IsBaseInstance=true.
type CalendarEvent struct {
	ID           int64
	SpecialistID int64

	Title       string
	Description *string
	Location    *string

	Start    time.Time
	End      time.Time
	IsAllDay bool
	Timezone string

	EventType  EventType
	Category   *string
	Priority   Priority
	Color      *string
	Visibility Visibility

	// Availability settings
	IsBookable   bool
	MaxBookings  *int // nil = unlimited
	BufferBefore int  // minutes
	BufferAfter  int  // minutes

	// Recurrence
	IsRecurring    bool
	RecurrenceRule *string
	SeriesID       uuid.NullUUID
	IsBaseInstance bool
	OriginalStart  *time.Time

	Status   EventStatus
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the raw [Start, End) window of the event
func (e *CalendarEvent) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// PaddedInterval returns the window widened by the event's own buffers
func (e *CalendarEvent) PaddedInterval() Interval {
	return e.Interval().Pad(e.BufferBefore, e.BufferAfter)
}

// OccurrenceDate is the calendar date exceptions are keyed by:
// the canonical slot of a generated instance, otherwise the start date.
func (e *CalendarEvent) OccurrenceDate() time.Time {
	if e.OriginalStart != nil {
		return DateOf(*e.OriginalStart)
	}
	return DateOf(e.Start)
}

// InSeries reports whether the event belongs to a recurring series
func (e *CalendarEvent) InSeries() bool {
	return e.SeriesID.Valid
}

// Blocks reports whether the event occupies the specialist's time
func (e *CalendarEvent) Blocks() bool {
	return e.IsActive && e.Status != EventStatusCancelled
}

// IsBookableAvailability reports whether the event opens a window clients can book into
func (e *CalendarEvent) IsBookableAvailability() bool {
	return e.Blocks() && e.EventType == EventTypeAvailability && e.IsBookable
}

// Clone returns a shallow copy safe to modify at the top level
func (e *CalendarEvent) Clone() *CalendarEvent {
	c := *e
	return &c
}

// EventsFilter filter of a calendar view
type EventsFilter struct {
	SpecialistID    int64
	From            *time.Time  // events ending after From
	To              *time.Time  // events starting before To
	Visibility      *Visibility // nil = any
	Types           []EventType // empty = any
	Categories      []string    // empty = any
	IncludeInactive bool
}
