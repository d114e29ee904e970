package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds color constants for the TUI. Two named themes exist; the active
// name is persisted so it survives restarts.
type Theme struct {
	Name string

	BgColor          tcell.Color
	FgColor          tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TableHeaderFg    tcell.Color
	TableCursorFg    tcell.Color
	TableCursorBg    tcell.Color
	MenuKeyColor     tcell.Color
	TitleColor       tcell.Color
	UnreadColor      tcell.Color
	OwnMessageColor  tcell.Color
	SeparatorColor   tcell.Color
	FlashInfoColor   tcell.Color
	FlashWarnColor   tcell.Color
	FlashErrColor    tcell.Color
}

// DarkTheme is the default.
func DarkTheme() *Theme {
	return &Theme{
		Name:             "dark",
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorCadetBlue,
		BorderColor:      tcell.ColorDodgerBlue,
		BorderFocusColor: tcell.ColorLightSkyBlue,
		TableHeaderFg:    tcell.ColorWhite,
		TableCursorFg:    tcell.ColorBlack,
		TableCursorBg:    tcell.ColorAqua,
		MenuKeyColor:     tcell.ColorDodgerBlue,
		TitleColor:       tcell.ColorFuchsia,
		UnreadColor:      tcell.ColorOrange,
		OwnMessageColor:  tcell.ColorLightGreen,
		SeparatorColor:   tcell.ColorGray,
		FlashInfoColor:   tcell.ColorNavajoWhite,
		FlashWarnColor:   tcell.ColorOrange,
		FlashErrColor:    tcell.ColorOrangeRed,
	}
}

// LightTheme is for terminals with a light background.
func LightTheme() *Theme {
	return &Theme{
		Name:             "light",
		BgColor:          tcell.ColorWhite,
		FgColor:          tcell.ColorBlack,
		BorderColor:      tcell.ColorNavy,
		BorderFocusColor: tcell.ColorBlue,
		TableHeaderFg:    tcell.ColorBlack,
		TableCursorFg:    tcell.ColorWhite,
		TableCursorBg:    tcell.ColorNavy,
		MenuKeyColor:     tcell.ColorNavy,
		TitleColor:       tcell.ColorDarkMagenta,
		UnreadColor:      tcell.ColorDarkOrange,
		OwnMessageColor:  tcell.ColorDarkGreen,
		SeparatorColor:   tcell.ColorDarkGray,
		FlashInfoColor:   tcell.ColorDarkSlateGray,
		FlashWarnColor:   tcell.ColorDarkOrange,
		FlashErrColor:    tcell.ColorRed,
	}
}

// ByName resolves a persisted theme name. Unknown names fall back to dark.
func ByName(name string) *Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Next returns the other theme, for the toggle binding.
func (t *Theme) Next() *Theme {
	if t.Name == "dark" {
		return LightTheme()
	}
	return DarkTheme()
}

// colorName converts a tcell color to a tview color tag name.
func colorName(c tcell.Color) string {
	for name, color := range tcell.ColorNames {
		if color == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

// Tag wraps text in a tview color tag for the given color.
func Tag(c tcell.Color, text string) string {
	return fmt.Sprintf("[%s]%s[-]", colorName(c), text)
}

// BoldTag wraps text in a bold tview color tag.
func BoldTag(c tcell.Color, text string) string {
	return fmt.Sprintf("[%s::b]%s[-:-:-]", colorName(c), text)
}
