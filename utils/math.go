package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds an amount to cents
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// CalendarDay returns midnight in loc of the year, month and day t carries in its own location
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// DaysBefore returns t shifted back by the given number of days
func DaysBefore(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, -days)
}
