// Package output renders command results for the terminal.
package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"math"
)

var (
	// Title is used for headings.
	Title = color.New(color.FgMagenta, color.Bold)
	// Good highlights favourable values such as a positive net benefit or the recommendation.
	Good = color.New(color.FgGreen, color.Bold)
	// Bad highlights unfavourable values.
	Bad = color.New(color.FgRed, color.Bold)
	// Muted is used for secondary information.
	Muted = color.New(color.Faint)
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	printer     = message.NewPrinter(language.English)
)

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Money formats v as whole dollars with thousands separators.
func Money(v float64) string {
	rounded := int64(math.Round(v))
	if rounded < 0 {
		return printer.Sprintf("-$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

// Number formats v rounded to an integer with thousands separators.
func Number(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// Signed prints v with Good when it is not negative and with Bad otherwise.
func Signed(w io.Writer, label, value string, v float64) {
	c := Good
	if v < 0 {
		c = Bad
	}
	_, _ = Muted.Fprintf(w, "%s: ", label)
	_, _ = c.Fprintln(w, value)
}
