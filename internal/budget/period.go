// internal/budget/period.go
package budget

import (
	"time"

	"assessor-financeiro/internal/domain"
)

// ResolveWindow returns the half-open [start, end) window of the budget period
// that contains now, rolled forward from the budget's start date. Monthly and
// yearly windows clamp the day to the target month's length, so a budget
// started Jan 31 rolls to Feb 28 (or 29), not Mar 2.
func ResolveWindow(startDate time.Time, period domain.BudgetPeriod, now time.Time) (time.Time, time.Time) {
	switch period {
	case domain.PeriodWeekly:
		return rollingDays(startDate, now, 7)
	case domain.PeriodMonthly:
		return rollingMonths(startDate, now, 1)
	default:
		return rollingYears(startDate, now, 1)
	}
}

func rollingDays(startDate, now time.Time, days int) (time.Time, time.Time) {
	span := time.Duration(days) * 24 * time.Hour
	deltaDays := int(now.Sub(startDate).Hours() / 24)
	if deltaDays < 0 {
		return startDate, startDate.Add(span)
	}
	periods := deltaDays / days
	windowStart := startDate.Add(time.Duration(periods*days) * 24 * time.Hour)
	return windowStart, windowStart.Add(span)
}

func rollingMonths(startDate, now time.Time, months int) (time.Time, time.Time) {
	windowStart := startDate
	windowEnd := addMonths(windowStart, months)
	for !windowEnd.After(now) {
		windowStart = windowEnd
		windowEnd = addMonths(windowStart, months)
	}
	return windowStart, windowEnd
}

func rollingYears(startDate, now time.Time, years int) (time.Time, time.Time) {
	windowStart := startDate
	windowEnd := addYears(windowStart, years)
	for !windowEnd.After(now) {
		windowStart = windowEnd
		windowEnd = addYears(windowStart, years)
	}
	return windowStart, windowEnd
}

// addMonths clamps the day instead of normalizing like time.AddDate would
// (Jan 31 + 1 month must be Feb 28/29, not Mar 2/3).
func addMonths(value time.Time, months int) time.Time {
	month := int(value.Month()) - 1 + months
	year := value.Year() + month/12
	month = month%12 + 1
	day := value.Day()
	if max := daysInMonth(year, time.Month(month)); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day,
		value.Hour(), value.Minute(), value.Second(), value.Nanosecond(), value.Location())
}

func addYears(value time.Time, years int) time.Time {
	year := value.Year() + years
	day := value.Day()
	if max := daysInMonth(year, value.Month()); day > max {
		day = max
	}
	return time.Date(year, value.Month(), day,
		value.Hour(), value.Minute(), value.Second(), value.Nanosecond(), value.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
