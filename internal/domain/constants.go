package domain

// Default scheduling values
const (
	DefaultServiceDurationMinutes = 30
	DefaultSlotIncrementMinutes   = 30
	DefaultRecurrenceHorizonDays  = 730
	DefaultSuggestionLimit        = 10
	DefaultNearbyWindowMinutes    = 120
	DefaultAdvanceBookingDays     = 365
	DefaultMinBookingNotice       = 60 // minutes
	DefaultBufferMinutes          = 15
	DefaultLunchBreakDuration     = 60 // minutes
)

// Business validation constants
const (
	MaxBufferMinutes       = 240
	MaxTitleLength         = 255
	MaxNotesLength         = 500
	MaxSlotIncrement       = 240
	MaxRecurrenceInterval  = 366
	MaxSuggestionRangeDays = 31
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04" // naive local date-time
)
