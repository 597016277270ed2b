package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculateMonthlyYield calculates the yield paid every month
// Formula: Principal * MonthlyRate
func CalculateMonthlyYield(principal decimal.Decimal, monthlyRate decimal.Decimal) decimal.Decimal {
	return principal.Mul(monthlyRate)
}

// DaysInMonth returns the number of days of the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths adds calendar months to date keeping the day of month.
// When the target month is shorter the day is clamped to its last day,
// so Jan 31 + 1 month is Feb 28 (Feb 29 on leap years).
func AddMonths(date time.Time, months int) time.Time {
	year, month, day := date.Date()

	// time.Date normalises month overflow into the year
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	if last := DaysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// FirstOfMonth returns the first day of the month that is months after date
func FirstOfMonth(date time.Time, months int) time.Time {
	year, month, _ := date.Date()
	return time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, date.Location())
}

// DateOnly strips the clock from a timestamp
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// IsBetweenDays checks if date falls between from and to, both inclusive.
// Each value is read as a calendar date in its own location.
func IsBetweenDays(date, from, to time.Time) bool {
	day := calendarDay(date)
	return !day.Before(calendarDay(from)) && !day.After(calendarDay(to))
}

func calendarDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
