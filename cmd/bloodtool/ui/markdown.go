package ui

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderJSON pretty-prints v as a fenced JSON block through glamour. It falls
// back to the plain indented text when rendering fails.
func RenderJSON(v any, width int, dark bool) string {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err.Error()
	}
	plain := string(data)

	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return plain
	}
	out, err := r.Render("```json\n" + plain + "\n```\n")
	if err != nil {
		return plain
	}
	return strings.TrimRight(out, "\n")
}
