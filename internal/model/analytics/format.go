package analytics

import (
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "₫"

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// FormatVND renders a full currency amount: dong symbol, dot-grouped
// thousands, no fraction digits.
func FormatVND(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-" + currencySymbol + b.String()
	}
	return currencySymbol + b.String()
}

// FormatShortVND renders a compact amount: millions as ₫X.YM, thousands
// as ₫X.YK, anything below a thousand through the full formatter. The one
// decimal place rounds half-up.
func FormatShortVND(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(million):
		return currencySymbol + amount.Div(million).StringFixed(1) + "M"
	case amount.GreaterThanOrEqual(thousand):
		return currencySymbol + amount.Div(thousand).StringFixed(1) + "K"
	default:
		return FormatVND(amount)
	}
}
