package domain

import "time"

// ExceptionType kind of per-occurrence override
type ExceptionType string

const (
	ExceptionCancelled ExceptionType = "cancelled"
	ExceptionModified  ExceptionType = "modified"
	ExceptionMoved     ExceptionType = "moved"
)

// IsValid reports whether t is a known exception type
func (t ExceptionType) IsValid() bool {
	switch t {
	case ExceptionCancelled, ExceptionModified, ExceptionMoved:
		return true
	}
	return false
}

// EventException overrides one occurrence date of a recurring series.
// At most one exception exists per (EventID, ExceptionDate); a newer one replaces the older.
type EventException struct {
	ID            int64
	EventID       int64
	ExceptionDate time.Time
	Type          ExceptionType

	// Replacement values, used only by modified and moved exceptions
	NewStart       *time.Time
	NewEnd         *time.Time
	NewTitle       *string
	NewDescription *string

	CreatedAt time.Time
}
