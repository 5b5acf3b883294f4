package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Options bounds expansion.
type Options struct {
	// HorizonDays caps expansion after the base start regardless of Until/Count.
	HorizonDays int
}

// Expand produces the occurrences of a recurring base event strictly after the
// base start, each with the base duration. The result depends only on the
// arguments, so running it twice yields the same sequence.
//
// Count bounds occurrences after the base. rrule-go counts DTSTART itself when
// it matches the rule, so the count passed to it is one higher in that case.
func Expand(base domain.Interval, rule Rule, opts Options) ([]domain.Interval, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if !base.IsValid() {
		return nil, ErrInvalidDuration
	}

	horizon := opts.HorizonDays
	if horizon <= 0 {
		horizon = domain.DefaultRecurrenceHorizonDays
	}

	// Граница генерации (не включительно)
	limit := base.Start.AddDate(0, 0, horizon)
	count := rule.Count
	if rule.Until != nil {
		untilEnd := domain.DateOf(*rule.Until).AddDate(0, 0, 1)
		untilEnd = time.Date(untilEnd.Year(), untilEnd.Month(), untilEnd.Day(), 0, 0, 0, 0, base.Start.Location())
		if !untilEnd.After(base.Start) {
			return nil, fmt.Errorf("%w: until %s is not after the base start", ErrInvalidRule, rule.Until.Format(domain.DateFormat))
		}
		if untilEnd.Before(limit) {
			limit = untilEnd
		}
		// until имеет приоритет над count
		count = 0
	}

	opt := rule.rOption()
	opt.Interval = rule.EffectiveInterval()
	opt.Dtstart = base.Start
	opt.Until = limit
	opt.Count = 0

	if count > 0 {
		startsOnBase, err := matchesStart(opt)
		if err != nil {
			return nil, err
		}
		if startsOnBase {
			count++
		}
		opt.Count = count
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	duration := base.Duration()
	starts := r.Between(base.Start, limit, false)

	occurrences := make([]domain.Interval, 0, len(starts))
	for _, start := range starts {
		occurrences = append(occurrences, domain.NewInterval(start, duration))
	}
	return occurrences, nil
}

// matchesStart reports whether DTSTART is itself an occurrence of the rule
func matchesStart(opt rrule.ROption) (bool, error) {
	opt.Count = 0
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	first := r.After(opt.Dtstart, true)
	return !first.IsZero() && first.Equal(opt.Dtstart), nil
}
