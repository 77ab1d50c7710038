package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositiveAmount checks that a monetary amount is set and greater than zero
func ValidatePositiveAmount(value *decimal.Decimal, fieldName string) error {
	if value == nil {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	if !value.IsPositive() {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if a count is non-negative
func ValidateNonNegative(value int, fieldName string) error {
	if value < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidatePeriod checks a billing month/year pair
func ValidatePeriod(month, year int) error {
	if month < MinMonth || month > MaxMonth {
		return NewValidationError(fmt.Sprintf("period month must be between %d and %d", MinMonth, MaxMonth))
	}
	if year < MinPeriodYear || year > MaxPeriodYear {
		return NewValidationError(fmt.Sprintf("period year must be between %d and %d", MinPeriodYear, MaxPeriodYear))
	}
	return nil
}

// ValidateNotBefore checks that the calendar day of date is on or after the
// calendar day of now. date is read in its own location and now in its own,
// so a UTC-parsed day compares against the local day of the clock.
func ValidateNotBefore(date, now time.Time, fieldName string) error {
	if date.IsZero() {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	if CalendarDay(date, now.Location()).Before(StartOfDay(now)) {
		return NewValidationError(fmt.Sprintf("%s cannot be in the past", fieldName))
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(value, fieldName string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s must use the %s format", fieldName, DateLayout))
	}
	return date, nil
}
