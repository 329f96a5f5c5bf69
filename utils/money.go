package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatIDR renders an amount the way donors read it, e.g. "Rp 25.000".
// Amounts are minor-unit-free (whole rupiah), so the fraction is dropped.
func FormatIDR(amount float64) string {
	whole := strconv.FormatInt(int64(amount), 10)

	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := "Rp " + b.String()
	if neg {
		out = "Rp -" + b.String()
	}
	return out
}

// FormatAmount renders an amount with two decimals for exports and receipts.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
