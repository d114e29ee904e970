package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// MenuHint describes a keyboard shortcut for display in the menu bar.
type MenuHint struct {
	Key         string
	Description string
}

// Menu displays keyboard shortcut hints in a single horizontal bar.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// SetTheme swaps the menu's color theme.
func (m *Menu) SetTheme(theme *Theme) {
	m.theme = theme
	m.SetBackgroundColor(theme.BgColor)
}

// Update renders the hints for the active page.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()
	for i, h := range hints {
		if i > 0 {
			_, _ = fmt.Fprint(m, "  ")
		}
		_, _ = fmt.Fprintf(m, "%s %s", BoldTag(m.theme.MenuKeyColor, "<"+h.Key+">"), h.Description)
	}
}
