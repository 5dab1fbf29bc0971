// utils/money.go
package utils

import "fmt"

// FormatCents renders integer cents as a dollar string, e.g. 1250 -> "$12.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// PercentOfCents applies a percentage to a cent amount, rounding half up.
// Used for tax lines.
func PercentOfCents(cents int64, percent float64) int64 {
	return int64(float64(cents)*percent/100 + 0.5)
}
