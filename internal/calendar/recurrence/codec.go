package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// weekdays indexed 0 = Monday .. 6 = Sunday
var weekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// ParseRule decodes an RFC 5545 RRULE string ("FREQ=WEEKLY;BYDAY=MO,WE").
// Parts the engine cannot honour are rejected with ErrInvalidRule instead of being ignored.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "RRULE:")
	if s == "" {
		return Rule{}, fmt.Errorf("%w: empty rule", ErrInvalidRule)
	}

	opt, err := rrule.StrToROption(s)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	var freq Frequency
	switch opt.Freq {
	case rrule.DAILY:
		freq = FrequencyDaily
	case rrule.WEEKLY:
		freq = FrequencyWeekly
	default:
		return Rule{}, fmt.Errorf("%w: unsupported frequency in %q", ErrInvalidRule, s)
	}

	if len(opt.Bysetpos) > 0 || len(opt.Byyearday) > 0 || len(opt.Byweekno) > 0 ||
		len(opt.Byhour) > 0 || len(opt.Byminute) > 0 || len(opt.Bysecond) > 0 || len(opt.Byeaster) > 0 {
		return Rule{}, fmt.Errorf("%w: unsupported BY* part in %q", ErrInvalidRule, s)
	}

	rule := Rule{
		Frequency:  freq,
		Interval:   opt.Interval,
		ByMonthDay: append([]int(nil), opt.Bymonthday...),
		ByMonth:    append([]int(nil), opt.Bymonth...),
		Count:      opt.Count,
	}

	for i := range opt.Byweekday {
		wd := opt.Byweekday[i]
		if wd.N() != 0 {
			return Rule{}, fmt.Errorf("%w: positional weekday in %q", ErrInvalidRule, s)
		}
		rule.ByWeekday = append(rule.ByWeekday, wd.Day())
	}

	if !opt.Until.IsZero() {
		u := opt.Until.UTC()
		until := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
		rule.Until = &until
	}

	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

// String encodes the rule as an RRULE value (without the "RRULE:" prefix).
func (r Rule) String() string {
	opt := r.rOption()
	opt.Interval = r.Interval

	if r.Until != nil {
		u := r.Until.UTC()
		opt.Until = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	}

	return opt.RRuleString()
}

// rOption maps frequency, count and the BY* filters onto rrule-go options
func (r Rule) rOption() rrule.ROption {
	opt := rrule.ROption{
		Count:      r.Count,
		Bymonthday: r.ByMonthDay,
		Bymonth:    r.ByMonth,
	}

	switch r.Frequency {
	case FrequencyDaily:
		opt.Freq = rrule.DAILY
	default:
		opt.Freq = rrule.WEEKLY
	}

	for _, d := range r.ByWeekday {
		if d >= 0 && d < len(weekdays) {
			opt.Byweekday = append(opt.Byweekday, weekdays[d])
		}
	}
	return opt
}
