// Package money converts between pt-BR locale strings and canonical decimals.
//
// Parsing never fails: forms are display-only inputs and a malformed value
// degrades to zero instead of blocking the user. Formatting mirrors the
// application's locale conventions (R$, "." thousands, "," decimals).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted monetary amount.
const CurrencySymbol = "R$"

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ParseBRL parses a locale-formatted currency string such as "R$ 1.234,56" or
// "-1.234,56". Every non-digit character is discarded and the remaining digits
// are read as an integer number of cents. A minus sign anywhere in the input
// makes the result negative. Input without digits yields zero.
func ParseBRL(s string) decimal.Decimal {
	var digits strings.Builder
	negative := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '-':
			negative = true
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero
	}

	cents, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero
	}
	amount := cents.Shift(-2)
	if negative {
		amount = amount.Neg()
	}
	return amount
}

// ParsePercent interprets a user-entered percentage and returns it as a
// decimal fraction. The rules are applied in order:
//
//  1. the input contains "%": the number is divided by 100 ("1%" -> 0.01);
//  2. the number is >= 1: it is read as percentage points ("1" -> 0.01);
//  3. otherwise it is already a fraction ("0.01" -> 0.01).
//
// Values close to 1 are inherently ambiguous ("0.99" stays 0.99 while "1"
// becomes 0.01). Callers depend on this exact behaviour; do not adjust it.
// Input without a number yields zero.
func ParsePercent(s string) decimal.Decimal {
	hasPercent := strings.Contains(s, "%")
	value, ok := parseLocaleNumber(s)
	if !ok {
		return decimal.Zero
	}

	switch {
	case hasPercent:
		return value.Div(hundred)
	case value.GreaterThanOrEqual(one):
		return value.Div(hundred)
	default:
		return value
	}
}

// parseLocaleNumber reads a plain number written with either "," or "." as
// the decimal separator. When a comma is present dots are thousands
// separators; several dots without a comma are also thousands separators.
func parseLocaleNumber(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.IndexFunc(cleaned, func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
		return decimal.Zero, false
	}

	switch {
	case strings.Contains(cleaned, ","):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	negative := strings.Contains(cleaned, "-")
	cleaned = strings.ReplaceAll(cleaned, "-", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// FormatBRL renders an amount as "R$ 1.234,56", rounding half away from zero
// to cents. Negative amounts render as "-R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	return formatSigned(d, 2, CurrencySymbol+" ", "")
}

// FormatPercent renders a fraction as a percentage: 0.012 -> "1,20%".
func FormatPercent(fraction decimal.Decimal, places int32) string {
	return formatSigned(fraction.Mul(hundred), places, "", "%")
}

// FormatPoints renders a rate difference in percentage points:
// 0.055 -> "5,50 p.p.".
func FormatPoints(diff decimal.Decimal, places int32) string {
	return formatSigned(diff.Mul(hundred), places, "", " p.p.")
}

// FormatNumber renders a plain decimal with locale separators.
func FormatNumber(d decimal.Decimal, places int32) string {
	return formatSigned(d, places, "", "")
}

func formatSigned(d decimal.Decimal, places int32, prefix, suffix string) string {
	rounded := d.Round(places)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	fixed := rounded.Abs().StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(prefix)
	b.WriteString(groupThousands(intPart))
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	b.WriteString(suffix)
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
