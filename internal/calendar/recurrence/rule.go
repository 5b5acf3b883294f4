package recurrence

import (
	"errors"
	"fmt"
	"time"
)

// Frequency supported recurrence period
type Frequency string

const (
	FrequencyDaily  Frequency = "DAILY"
	FrequencyWeekly Frequency = "WEEKLY"
)

var (
	// ErrInvalidRule indicates an unsupported frequency or a malformed rule.
	ErrInvalidRule = errors.New("recurrence: invalid rule")

	// ErrInvalidDuration indicates the base event has no positive duration.
	ErrInvalidDuration = errors.New("recurrence: base event duration must be positive")
)

// Rule describes how a base event repeats.
//
// Weekdays use 0 = Monday .. 6 = Sunday. Until is a calendar date and is
// inclusive up to the end of that day; when both Until and Count are set,
// Until wins. With neither set expansion stops at the horizon.
type Rule struct {
	Frequency  Frequency
	Interval   int
	ByWeekday  []int
	ByMonthDay []int
	ByMonth    []int
	Until      *time.Time
	Count      int
}

// EffectiveInterval returns the step multiplier, treating 0 as 1.
func (r Rule) EffectiveInterval() int {
	if r.Interval <= 0 {
		return 1
	}
	return r.Interval
}

// Validate checks the rule is expandable.
func (r Rule) Validate() error {
	if r.Frequency != FrequencyDaily && r.Frequency != FrequencyWeekly {
		return fmt.Errorf("%w: unsupported frequency %q", ErrInvalidRule, r.Frequency)
	}
	if r.Interval < 0 {
		return fmt.Errorf("%w: interval must not be negative", ErrInvalidRule)
	}
	if r.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidRule)
	}
	for _, d := range r.ByWeekday {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidRule, d)
		}
	}
	for _, d := range r.ByMonthDay {
		if d < 1 || d > 31 {
			return fmt.Errorf("%w: month day %d out of range 1..31", ErrInvalidRule, d)
		}
	}
	for _, m := range r.ByMonth {
		if m < 1 || m > 12 {
			return fmt.Errorf("%w: month %d out of range 1..12", ErrInvalidRule, m)
		}
	}
	return nil
}
