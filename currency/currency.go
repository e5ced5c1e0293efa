// Package currency converts between the store's base currency (LKR) and the
// customer-facing secondary currency (VND) at a fixed rate.
package currency

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	Source = "LKR"
	Target = "VND"
)

// DefaultRate is the number of VND per LKR.
var DefaultRate = decimal.NewFromInt(88)

var (
	// everything that is not a digit or a decimal point
	nonNumeric = regexp.MustCompile(`[^0-9.]`)
	// leading float literal, the way a browser number field reads it
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)
)

// Converter applies one process-wide fixed exchange rate.
type Converter struct {
	rate decimal.Decimal
}

func NewConverter(rate decimal.Decimal) *Converter {
	return &Converter{rate: rate}
}

// Default uses DefaultRate.
var Default = NewConverter(DefaultRate)

func (c *Converter) Rate() decimal.Decimal {
	return c.rate
}

// Forward converts a source amount into the target currency, unrounded.
func (c *Converter) Forward(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.rate)
}

// ForwardText converts raw source input and renders it for display. Input that
// does not start with a number yields "".
func (c *Converter) ForwardText(raw string) string {
	amount, ok := parseLeading(strings.TrimSpace(raw))
	if !ok {
		return ""
	}
	return FormatTarget(c.Forward(amount))
}

// Backward strips every character except digits and '.', parses what is left
// and converts it back into the source currency rounded to 2 places.
func (c *Converter) Backward(raw string) (decimal.Decimal, bool) {
	amount, ok := parseLeading(Sanitize(raw))
	if !ok {
		return decimal.Zero, false
	}
	return amount.Div(c.rate).Round(2), true
}

// BackwardText is Backward rendered with two fixed decimals, or "".
func (c *Converter) BackwardText(raw string) string {
	amount, ok := c.Backward(raw)
	if !ok {
		return ""
	}
	return amount.StringFixed(2)
}

// Sanitize drops every character that is not a digit or a decimal point.
func Sanitize(raw string) string {
	return nonNumeric.ReplaceAllString(raw, "")
}

func parseLeading(s string) (decimal.Decimal, bool) {
	lit := leadingNumber.FindString(s)
	if lit == "" {
		return decimal.Zero, false
	}
	lit = strings.TrimSuffix(strings.TrimPrefix(lit, "+"), ".")
	if strings.HasPrefix(lit, ".") {
		lit = "0" + lit
	} else if strings.HasPrefix(lit, "-.") {
		lit = "-0" + lit[1:]
	}
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatSource renders an LKR amount with English digit grouping ("1,500").
func FormatSource(amount decimal.Decimal) string {
	return format(language.English, amount)
}

// FormatTarget renders a VND amount with Vietnamese digit grouping ("132.000").
func FormatTarget(amount decimal.Decimal) string {
	return format(language.Vietnamese, amount)
}

func format(tag language.Tag, amount decimal.Decimal) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(3)))
}
