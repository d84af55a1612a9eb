package utils

import (
	"fmt"
	"strconv"
	"time"
)

// FormatUSD formats a dollar amount for display.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatDateTime formats a timestamp for display.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseQuantity validates a share quantity entered as text. Quantities are
// whole shares and must be positive.
func ParseQuantity(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("enter a quantity")
	}

	quantity, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quantity must be a whole number")
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity must be greater than zero")
	}

	return quantity, nil
}

// TruncateString shortens a string for compact display.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
