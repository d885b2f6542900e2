package utils

import (
	"fmt"
	"strconv"
	"time"
)

// FormatDuration renders a duration as flight time.
// Example: 125 minutes -> "2h 5m"
func FormatDuration(d time.Duration) string {
	minutes := int64(d.Minutes())

	h := minutes / 60
	m := minutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatWon formats a fare amount in Korean won with thousands separators.
// Example: 185000 -> "₩185,000"
func FormatWon(amount int64) string {
	if amount == 0 {
		return "₩0"
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	var result []byte

	str := strconv.FormatInt(amount, 10)

	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		result = append([]byte{str[i]}, result...)
		count++

		if count%3 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	if negative {
		return "₩-" + string(result)
	}

	return "₩" + string(result)
}
