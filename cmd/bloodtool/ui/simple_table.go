package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows with aligned columns.
type SimpleTable struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Empty    string // shown instead of the table when there are no rows
	MaxWidth int    // per-cell cap, zero for none
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table. Missing cells render blank.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

func (t *SimpleTable) cell(s string) string {
	if t.MaxWidth > 0 && lipgloss.Width(s) > t.MaxWidth {
		r := []rune(s)
		if len(r) > t.MaxWidth-1 {
			r = r[:t.MaxWidth-1]
		}
		return string(r) + "…"
	}
	return s
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	if len(t.Rows) == 0 {
		if t.Empty == "" {
			return ""
		}
		sb.WriteString(styles.Muted.Render(t.Empty))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(t.cell(row[i])))
		}
	}
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2 // cell padding
		total += widths[i]
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sep := styles.Muted.Render("|")

	writeRow := func(style lipgloss.Style, cells []string) {
		for i, w := range widths {
			text := ""
			if i < len(cells) {
				text = t.cell(cells[i])
			}
			sb.WriteString(style.Width(w).Render(text))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headerStyle, t.Headers)
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(rowStyle, row)
	}

	return sb.String()
}
