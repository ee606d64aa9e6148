// Package report prints the human-readable per-category component summary.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	notSpecified    = "Not specified"
	defaultCategory = "OTHER"
)

// Row is one component line of the summary.
type Row struct {
	Name     string
	Version  string
	Vendor   string
	Product  string
	Category string
	CPE      string
}

// Console writes summaries to an output stream. Styling is dropped
// automatically when the stream is not a terminal.
type Console struct {
	w       io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	cpe     lipgloss.Style
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   r.NewStyle().Faint(true),
		cpe:     r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Summary prints the package list for one category.
func (c *Console) Summary(identifier, ecuName string, rows []Row) {
	fmt.Fprintln(c.w, c.heading.Render(fmt.Sprintf("=== %s (ECU: %s) Packages ===", identifier, ecuName)))
	for i, row := range rows {
		fmt.Fprintf(c.w, "%d. %s %s\n", i+1, c.label.Render("Component:"), row.Name)
		c.field("Version:", or(row.Version, notSpecified))
		c.field("Vendor:", or(row.Vendor, notSpecified))
		c.field("Product:", or(row.Product, notSpecified))
		c.field("Category:", or(row.Category, defaultCategory))
		fmt.Fprintf(c.w, "   %s %s\n\n", c.label.Render("CPE:"), c.cpe.Render(row.CPE))
	}
}

// Written reports where a category's document went.
func (c *Console) Written(path string) {
	fmt.Fprintf(c.w, "SPDX document with CPE written to: %s\n", path)
}

func (c *Console) field(label, value string) {
	fmt.Fprintf(c.w, "   %s %s\n", c.label.Render(label), value)
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
