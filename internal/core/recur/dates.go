// Package recur holds the pure core of series management: calendar-date
// arithmetic and batch generation of dated occurrences. Everything here
// is deterministic for given inputs.
package recur

import (
	"time"

	"planloop/internal/core/domain"
)

// Step advances a calendar day by n units of the given cadence.
//
// Month-based cadences (monthly, quarterly, yearly) clamp to the last
// valid day of the target month, so stepping Jan 31 by one month lands
// on Feb 29 in a leap year rather than spilling into March. Unknown
// units return the input unchanged.
func Step(d domain.Date, unit domain.Recurrence, n int) domain.Date {
	switch unit {
	case domain.RecurrenceDaily:
		return d.AddDays(n)
	case domain.RecurrenceWeekly:
		return d.AddDays(7 * n)
	case domain.RecurrenceMonthly:
		return addMonths(d, n)
	case domain.RecurrenceQuarterly:
		return addMonths(d, 3*n)
	case domain.RecurrenceYearly:
		return addMonths(d, 12*n)
	}
	return d
}

// Sequence produces count strictly increasing days starting at start,
// stepping by multiplier units each time. Steps are taken from the
// anchor (start + i×multiplier units), not chained, so a day-31 anchor
// recovers day 31 in long months instead of drifting after a clamp.
func Sequence(start domain.Date, unit domain.Recurrence, count, multiplier int) []domain.Date {
	if start.IsZero() || !unit.BaseUnit() || count <= 0 || multiplier <= 0 {
		return nil
	}
	out := make([]domain.Date, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Step(start, unit, i*multiplier))
	}
	return out
}

func addMonths(d domain.Date, n int) domain.Date {
	anchor := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := d.Day
	if last := daysIn(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return domain.NewDate(anchor.Year(), anchor.Month(), day)
}

// daysIn is the number of days in the given month; day zero of the next
// month normalizes to its last day.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
