package schedule

import (
	"testing"
	"time"

	"surv/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceDaily(t *testing.T) {
	rule := models.RecurringJob{Frequency: models.FREQUENCY_DAILY, Interval: 3}
	got := NextOccurrence(rule, date(2026, time.January, 5))
	assert.Equal(t, date(2026, time.January, 8), got)
}

func TestNextOccurrenceWeekly(t *testing.T) {
	// 2026-01-05 is a Monday; day_of_week 2 is Wednesday
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"from monday lands on same-week wednesday", date(2026, time.January, 5), date(2026, time.January, 7)},
		{"from wednesday skips to next week", date(2026, time.January, 7), date(2026, time.January, 14)},
		{"from friday lands on next wednesday", date(2026, time.January, 9), date(2026, time.January, 14)},
		{"from sunday lands on next wednesday", date(2026, time.January, 11), date(2026, time.January, 14)},
	}

	rule := models.RecurringJob{Frequency: models.FREQUENCY_WEEKLY, Interval: 1, DayOfWeek: intp(2)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(rule, tt.from)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Wednesday, got.Weekday())
		})
	}
}

func TestNextOccurrenceWeeklySequenceIsSevenDaySpaced(t *testing.T) {
	rule := models.RecurringJob{Frequency: models.FREQUENCY_WEEKLY, Interval: 1, DayOfWeek: intp(2)}

	current := NextOccurrence(rule, date(2026, time.January, 5))
	for i := 0; i < 10; i++ {
		next := NextOccurrence(rule, current)
		assert.Equal(t, current.AddDate(0, 0, 7), next)
		assert.True(t, next.After(current))
		current = next
	}
}

func TestNextOccurrenceWeeklyWithoutTargetWeekday(t *testing.T) {
	rule := models.RecurringJob{Frequency: models.FREQUENCY_WEEKLY, Interval: 2}
	got := NextOccurrence(rule, date(2026, time.January, 5))
	assert.Equal(t, date(2026, time.January, 19), got)
}

func TestNextOccurrenceMonthly(t *testing.T) {
	tests := []struct {
		name       string
		dayOfMonth *int
		from       time.Time
		interval   int
		want       time.Time
	}{
		{"fixed day", intp(15), date(2026, time.January, 10), 1, date(2026, time.February, 15)},
		{"day 31 in short month falls back to 28", intp(31), date(2026, time.March, 31), 1, date(2026, time.April, 28)},
		{"day 30 in february falls back to 28", intp(30), date(2026, time.January, 30), 1, date(2026, time.February, 28)},
		{"no day keeps from day", nil, date(2026, time.January, 10), 1, date(2026, time.February, 10)},
		{"year rollover", intp(5), date(2026, time.November, 5), 3, date(2027, time.February, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := models.RecurringJob{Frequency: models.FREQUENCY_MONTHLY, Interval: tt.interval, DayOfMonth: tt.dayOfMonth}
			assert.Equal(t, tt.want, NextOccurrence(rule, tt.from))
		})
	}
}

func TestNextOccurrenceYearly(t *testing.T) {
	rule := models.RecurringJob{Frequency: models.FREQUENCY_YEARLY, Interval: 2}
	got := NextOccurrence(rule, date(2026, time.June, 15))
	assert.Equal(t, date(2028, time.June, 15), got)
}

func TestNextOccurrenceInvalidIntervalIsClamped(t *testing.T) {
	rule := models.RecurringJob{Frequency: models.FREQUENCY_DAILY, Interval: 0}
	got := NextOccurrence(rule, date(2026, time.January, 5))
	assert.Equal(t, date(2026, time.January, 6), got)
}

func TestOccurrencesWindow(t *testing.T) {
	now := date(2026, time.January, 10)
	rule := models.RecurringJob{
		Frequency: models.FREQUENCY_DAILY,
		Interval:  1,
		StartDate: date(2026, time.January, 8),
	}

	dates := Occurrences(rule, now, 2)
	require.Len(t, dates, 5)
	assert.Equal(t, date(2026, time.January, 8), dates[0])
	assert.Equal(t, date(2026, time.January, 12), dates[4])
}

func TestOccurrencesStartAtWatermark(t *testing.T) {
	now := date(2026, time.January, 10)
	watermark := date(2026, time.January, 10)
	rule := models.RecurringJob{
		Frequency:     models.FREQUENCY_DAILY,
		Interval:      1,
		StartDate:     date(2026, time.January, 1),
		LastGenerated: &watermark,
	}

	dates := Occurrences(rule, now, 2)
	require.Len(t, dates, 3)
	assert.Equal(t, watermark, dates[0])
}

func TestOccurrencesClampedByEndDate(t *testing.T) {
	now := date(2026, time.January, 10)
	end := date(2026, time.January, 11)
	rule := models.RecurringJob{
		Frequency: models.FREQUENCY_DAILY,
		Interval:  1,
		StartDate: date(2026, time.January, 10),
		EndDate:   &end,
	}

	dates := Occurrences(rule, now, 30)
	require.Len(t, dates, 2)
	assert.Equal(t, end, dates[1])
}

func TestOccurrencesUnknownFrequencyTerminates(t *testing.T) {
	rule := models.RecurringJob{
		Frequency: "fortnightly",
		Interval:  1,
		StartDate: date(2026, time.January, 1),
	}
	dates := Occurrences(rule, date(2026, time.January, 10), 30)
	assert.Len(t, dates, 1)
}
