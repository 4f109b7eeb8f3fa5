package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Menu is the sidebar page list.
type Menu struct {
	Title  string
	Items  []string
	Active int
}

// NewMenu creates a menu with the first item active.
func NewMenu(title string, items ...string) Menu {
	return Menu{Title: title, Items: items}
}

// Next activates the following item, wrapping at the end.
func (m *Menu) Next() {
	if len(m.Items) > 0 {
		m.Active = (m.Active + 1) % len(m.Items)
	}
}

// Prev activates the preceding item, wrapping at the start.
func (m *Menu) Prev() {
	if len(m.Items) > 0 {
		m.Active = (m.Active - 1 + len(m.Items)) % len(m.Items)
	}
}

// Select activates item i when it exists.
func (m *Menu) Select(i int) bool {
	if i < 0 || i >= len(m.Items) {
		return false
	}
	m.Active = i
	return true
}

// View renders the menu in a bordered column of the given size.
func (m Menu) View(styles Styles, width, height int) string {
	var sb strings.Builder
	sb.WriteString(styles.MenuTitle.Render(m.Title))
	sb.WriteString("\n")
	for i, item := range m.Items {
		label := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.Active {
			sb.WriteString(styles.MenuActive.Render(label))
		} else {
			sb.WriteString(styles.MenuItem.Render(label))
		}
		sb.WriteString("\n")
	}
	return styles.Sidebar.
		Width(width).
		Height(max(height, len(m.Items)+2)).
		Render(lipgloss.NewStyle().MaxWidth(width).Render(strings.TrimRight(sb.String(), "\n")))
}
