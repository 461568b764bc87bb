package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"onepercent/internal/shared/models"
)

func TestRenderTablePaginationFooter(t *testing.T) {
	cols := []Column[models.Preference]{
		{Title: "Name", Render: func(p models.Preference) string { return p.Name }},
		{Title: "Active", Render: func(p models.Preference) string { return YesNo(p.Active) }},
	}
	rows := []models.Preference{{Name: "Vegan", Active: true}, {Name: "Keto"}}
	buf := new(bytes.Buffer)
	RenderTable(buf, cols, rows, models.Pagination{Total: 42, Page: 2, Limit: 10})

	out := buf.String()
	assert.Contains(t, out, "Vegan")
	assert.Contains(t, out, "Keto")
	assert.Contains(t, out, "Page 2/5 (total 42)")
}

func TestRenderTableExactPageBoundary(t *testing.T) {
	buf := new(bytes.Buffer)
	RenderTable(buf, []Column[models.Preference]{{Title: "Name", Render: func(p models.Preference) string { return p.Name }}},
		nil, models.Pagination{Total: 40, Page: 1, Limit: 10})
	assert.Contains(t, buf.String(), "Page 1/4 (total 40)")
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mon Mar 9 2026", FormatDate(ts))
	assert.Equal(t, "-", FormatDate(time.Time{}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	long := strings.Repeat("a", 20)
	assert.Equal(t, "aaaaaaa...", Truncate(long, 10))
}
