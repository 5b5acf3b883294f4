package suggest

import (
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

var (
	peakHours     = map[int]struct{}{9: {}, 10: {}, 14: {}, 15: {}}
	nearPeakHours = map[int]struct{}{8: {}, 11: {}, 13: {}, 16: {}}
)

// Factors weights a candidate is scored by; Score is their capped product
type Factors struct {
	TimeOfDay float64
	Weekday   float64
	Notice    float64
	Density   float64
}

// Score product of the factors capped at 1.0
func (f Factors) Score() float64 {
	return math.Min(1.0, f.TimeOfDay*f.Weekday*f.Notice*f.Density)
}

// Evaluate computes the factors of a candidate start and a readable reason.
// minNoticeMinutes is the specialist's minimum notice, nearby the number of
// events and bookings around the candidate.
func Evaluate(start, now time.Time, minNoticeMinutes, nearby int) (Factors, string) {
	reasons := make([]string, 0, 4)
	var f Factors

	switch hour := start.Hour(); {
	case contains(peakHours, hour):
		f.TimeOfDay = 1.0
		reasons = append(reasons, "peak hour")
	case contains(nearPeakHours, hour):
		f.TimeOfDay = 0.8
		reasons = append(reasons, "near peak hour")
	default:
		f.TimeOfDay = 0.6
		reasons = append(reasons, "off-peak hour")
	}

	if domain.IsWeekend(start) {
		f.Weekday = 0.7
		reasons = append(reasons, "weekend")
	} else {
		f.Weekday = 1.0
		reasons = append(reasons, "weekday")
	}

	lead := start.Sub(now)
	minNotice := time.Duration(minNoticeMinutes) * time.Minute
	switch {
	case lead >= 2*minNotice:
		f.Notice = 1.0
		reasons = append(reasons, "ample notice")
	case lead >= minNotice:
		f.Notice = 0.8
		reasons = append(reasons, "meets minimum notice")
	default:
		f.Notice = 0.3
		reasons = append(reasons, "short notice")
	}

	switch {
	case nearby == 0:
		f.Density = 1.0
		reasons = append(reasons, "quiet period")
	case nearby <= 2:
		f.Density = 0.9
		reasons = append(reasons, "light schedule nearby")
	default:
		f.Density = 0.7
		reasons = append(reasons, "busy period nearby")
	}

	return f, strings.Join(reasons, ", ")
}

func contains(set map[int]struct{}, v int) bool {
	_, ok := set[v]
	return ok
}
