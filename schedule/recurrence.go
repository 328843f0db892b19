package schedule

import (
	"time"

	"surv/models"
)

// weekdayMon0 numbers weekdays with 0 = Monday ... 6 = Sunday, the
// numbering RecurringJob.DayOfWeek uses.
func weekdayMon0(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextOccurrence computes the occurrence date following from for the
// rule's recurrence pattern. Pure and total: it never fails for a valid
// rule, and the monthly case falls back to day 28 when the target day
// does not exist in the target month (e.g. day 31 in February).
func NextOccurrence(rule models.RecurringJob, from time.Time) time.Time {
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	switch rule.Frequency {
	case models.FREQUENCY_DAILY:
		return from.AddDate(0, 0, interval)

	case models.FREQUENCY_WEEKLY:
		if rule.DayOfWeek == nil {
			// no target weekday: plain week stepping keeps the walk total
			return from.AddDate(0, 0, 7*interval)
		}
		ahead := *rule.DayOfWeek - weekdayMon0(from)
		if ahead <= 0 {
			ahead += 7 * interval
		}
		return from.AddDate(0, 0, ahead)

	case models.FREQUENCY_MONTHLY:
		month := int(from.Month()) + interval
		year := from.Year()
		for month > 12 {
			month -= 12
			year++
		}
		day := from.Day()
		if rule.DayOfMonth != nil {
			day = *rule.DayOfMonth
		}
		if day > daysInMonth(year, time.Month(month)) {
			day = 28
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, from.Location())

	case models.FREQUENCY_YEARLY:
		return time.Date(from.Year()+interval, from.Month(), from.Day(),
			from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
	}

	return from
}

// Occurrences walks the generation window for rule and returns every
// candidate occurrence date, inclusive of the window start. The window
// starts at the rule's watermark (LastGenerated) or StartDate, and ends
// at min(now + horizonDays, EndDate). Pure: de-duplication against
// already-generated jobs is the caller's job.
func Occurrences(rule models.RecurringJob, now time.Time, horizonDays int) []time.Time {
	start := rule.StartDate
	if rule.LastGenerated != nil {
		start = *rule.LastGenerated
	}

	end := now.AddDate(0, 0, horizonDays)
	if rule.EndDate != nil && end.After(*rule.EndDate) {
		end = *rule.EndDate
	}

	var dates []time.Time
	for current := start; !current.After(end); {
		dates = append(dates, current)
		next := NextOccurrence(rule, current)
		if !next.After(current) {
			// a rule that does not advance would loop forever
			break
		}
		current = next
	}
	return dates
}
