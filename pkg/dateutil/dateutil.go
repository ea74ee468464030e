package dateutil

import (
	"fmt"
	"time"
)

// MonthIndex returns an absolute month number for a calendar month so that
// month arithmetic reduces to integer subtraction.
func MonthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// MonthsBetween returns the signed number of whole months from one calendar
// month to another. Days are ignored.
func MonthsBetween(fromYear int, fromMonth time.Month, toYear int, toMonth time.Month) int {
	return MonthIndex(toYear, toMonth) - MonthIndex(fromYear, fromMonth)
}

// SplitMonths splits a month count into completed years and the remaining
// months. Negative counts use floor division so the month part is always 0-11.
func SplitMonths(total int) (years, months int) {
	years = total / 12
	months = total % 12
	if months < 0 {
		years--
		months += 12
	}
	return years, months
}

// FirstOfMonth returns midnight UTC on the first day of the given month.
func FirstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds a number of calendar months to a first-of-month date.
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// MonthLabel formats a date as "Jan 2025".
func MonthLabel(date time.Time) string {
	return fmt.Sprintf("%s %d", date.Month().String()[:3], date.Year())
}

// ValidMonth reports whether m is a calendar month.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}
