// Package renderer renders engine results as markdown.
//
// Formatting options are always passed explicitly, there is no package level
// locale or currency.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/immo"
)

// Format holds the display options of amounts.
type Format struct {
	Currency string // ISO 4217 code, EUR when empty
	Signed   bool   // prefix positive amounts with "+"
}

// currency returns the go-money currency of the format.
func (f Format) currency() money.Currency {
	code := f.Currency
	if code == "" {
		code = money.EUR
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// Amount formats a in the format currency, rounded to the currency fraction.
func (f Format) Amount(a immo.Amount) string {
	cur := f.currency()
	minor := a.Decimal().Round(int32(cur.Fraction)).Shift(int32(cur.Fraction)).IntPart()
	s := cur.Formatter().Format(minor)
	if f.Signed && a.IsPositive() {
		return "+" + s
	}
	return s
}

// OptionalAmount formats a, or "n/a" when it is nil.
func (f Format) OptionalAmount(a *immo.Amount) string {
	if a == nil {
		return "n/a"
	}
	return f.Amount(*a)
}

// Percent formats p, or "n/a" when it is nil.
func (f Format) Percent(p *immo.Percent) string {
	if p == nil {
		return "n/a"
	}
	if f.Signed {
		return p.SignedString()
	}
	return p.String()
}

// Plain returns a copy of f that never signs amounts.
func (f Format) Plain() Format {
	f.Signed = false
	return f
}

// cell escapes the pipes of s so it can be used in a markdown table.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// row writes a markdown table row.
func row(w io.Writer, cells ...string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
}
