// Package format renders prices and timestamps the way the dashboard shows them.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

const rupee = "₹"

var (
	crore    = decimal.NewFromInt(10000000)
	lakh     = decimal.NewFromInt(100000)
	thousand = decimal.NewFromInt(1000)
)

// ParseAmount parses numeric text such as "2500000", "25,00,000" or "12.5".
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), rupee))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Price renders an amount in crores or lakhs once it reaches those units,
// otherwise as a rupee literal with Indian digit grouping. Abbreviated values
// keep two truncated decimals, so 99,99,999 is "₹99.99 L", never "₹100.00 L".
func Price(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(crore):
		return abbreviate(amount, crore, "Cr")
	case amount.GreaterThanOrEqual(lakh):
		return abbreviate(amount, lakh, "L")
	default:
		return Rupees(amount)
	}
}

// PriceCompact is Price with an extra thousands tier, used on property cards.
func PriceCompact(amount decimal.Decimal) string {
	if amount.LessThan(lakh) && amount.GreaterThanOrEqual(thousand) {
		return abbreviate(amount, thousand, "K")
	}
	return Price(amount)
}

// Rupees renders the full amount, e.g. "₹12,34,567" or "₹950.5".
func Rupees(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	amount = amount.Truncate(2)
	whole := amount.IntPart()
	out := sign + rupee + IndianGrouping(whole)

	frac := amount.Sub(decimal.NewFromInt(whole))
	if !frac.IsZero() {
		digits := strings.TrimPrefix(frac.StringFixed(2), "0")
		out += strings.TrimRight(digits, "0")
	}
	return out
}

func abbreviate(amount, unit decimal.Decimal, suffix string) string {
	return rupee + amount.Div(unit).Truncate(2).StringFixed(2) + " " + suffix
}

// IndianGrouping inserts separators in the Indian style: the last three
// digits form one group and every two digits before that another.
func IndianGrouping(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := decimal.NewFromInt(n).String()
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(append(parts, tail), ",")
	}
	if neg {
		return "-" + s
	}
	return s
}
