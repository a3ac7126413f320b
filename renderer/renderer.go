// Package renderer formats watchlist data as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/etnz/watchlist"
)

// markdown accumulates a markdown document.
type markdown struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the document.
func (m *markdown) Printf(format string, args ...any) {
	fmt.Fprintf(m, format, args...)
}

// Row writes a table row, escaping the cells.
func (m *markdown) Row(cells ...string) {
	m.WriteString("|")
	for _, c := range cells {
		m.WriteString(" ")
		m.WriteString(cell(c))
		m.WriteString(" |")
	}
	m.WriteString("\n")
}

// cell escapes a table cell content. Empty cells are rendered as "-".
func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// Price formats a price in its currency, like "$123.46".
// Unknown currencies fall back to the plain decimal value.
func Price(a watchlist.Amount, currency string) string {
	if !a.Valid() {
		return "-"
	}
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(currency)))
	if cur == nil {
		return a.Decimal().StringFixed(2)
	}
	units := a.Decimal().Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(units.IntPart())
}

// Percent formats a percentage with an explicit sign.
func Percent(a watchlist.Amount) string {
	if !a.Valid() {
		return "-"
	}
	return a.SignedString()
}

// Problems lists the errors joined in err.
func Problems(err error) string {
	var m markdown
	m.Printf("# Problems\n\n")
	if err == nil {
		m.Printf("No problem found.\n")
		return m.String()
	}
	for _, e := range flatten(err) {
		m.Printf("- %s\n", strings.ReplaceAll(e.Error(), "\n", " "))
	}
	return m.String()
}

// flatten unwraps the errors joined with errors.Join.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var all []error
		for _, e := range joined.Unwrap() {
			all = append(all, flatten(e)...)
		}
		return all
	}
	return []error{err}
}
