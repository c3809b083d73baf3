package models

import (
	"fmt"
	"strconv"
)

// FormatCurrency renders an amount in minor units as a US dollar string,
// e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	dollars := strconv.FormatInt(cents/100, 10)

	// Insert thousands separators
	grouped := make([]byte, 0, len(dollars)+len(dollars)/3)
	for i := 0; i < len(dollars); i++ {
		if i > 0 && (len(dollars)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, dollars[i])
	}

	return fmt.Sprintf("%s$%s.%02d", sign, grouped, cents%100)
}
