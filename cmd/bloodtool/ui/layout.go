// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for panel sizing
const (
	MenuWidth       = 30
	HeaderHeight    = 2
	FooterHeight    = 2
	ContentPaddingH = 2
	ContentPaddingV = 1

	// Lines a page reserves around its form for title, hints and errors
	PageChromeHeight = 6

	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// SidebarWidth returns the menu width; compact terminals get a narrower menu.
func (l LayoutConfig) SidebarWidth() int {
	if l.IsCompact {
		return MenuWidth - 6
	}
	return MenuWidth
}

// ContentWidth returns the usable width to the right of the sidebar
func (l LayoutConfig) ContentWidth() int {
	return max(l.TerminalWidth-l.SidebarWidth()-ContentPaddingH*2-1, 20)
}

// ContentHeight returns the usable height between header and footer
func (l LayoutConfig) ContentHeight() int {
	return max(l.TerminalHeight-HeaderHeight-FooterHeight-ContentPaddingV*2, 5)
}

// FormHeight returns how many form rows fit on a page of the given height
func FormHeight(pageHeight int) int {
	return max(pageHeight-PageChromeHeight, 3)
}
