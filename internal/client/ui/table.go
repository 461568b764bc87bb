// Package ui renders list screens as text tables with the pagination footer
// the dashboard tables show.
package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"onepercent/internal/shared/models"
)

// Column maps one record field to a table cell via a custom renderer.
type Column[T any] struct {
	Title  string
	Render func(T) string
}

// RenderTable writes rows and a "Page p/N (total T)" footer. The page count
// is ceil(total/limit).
func RenderTable[T any](w io.Writer, cols []Column[T], rows []T, p models.Pagination) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Render(row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nPage %d/%d (total %d)\n", p.Page, p.TotalPages(), p.Total)
}

// FormatDate renders a timestamp the way the dashboard's date cells do.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Mon Jan 2 2006")
}

// Truncate shortens long cell text, keeping tables scannable.
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// YesNo renders a boolean cell.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
