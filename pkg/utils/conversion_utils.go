package utils

import (
	"fmt"
	"strconv"
)

// StrToInt64 converts a string to an int64.
func StrToInt64(s string) (int64, error) {
	num, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}

// FormatCurrency renders a monetary amount as the integer-truncated display
// string used across the UI ("$130"). Truncation, not rounding, matches the
// historical display behavior.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%d", int64(amount))
}
