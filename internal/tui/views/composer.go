package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/clack-chat/clack/internal/tui/model"
	"github.com/clack-chat/clack/internal/tui/ui"
)

// Composer is the text input for sending messages. Input is capped at
// model.MaxComposeLen runes.
type Composer struct {
	*tview.InputField
	onSend func(text string)
}

// NewComposer creates the message composer.
func NewComposer(theme *ui.Theme) *Composer {
	input := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0)
	input.SetAcceptanceFunc(func(text string, _ rune) bool {
		return len([]rune(text)) <= model.MaxComposeLen
	})

	c := &Composer{InputField: input}
	c.SetTheme(theme)

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && c.onSend != nil {
			text := c.GetText()
			if text != "" {
				c.onSend(text)
				c.SetText("")
			}
		}
	})

	return c
}

// SetTheme swaps the composer's color theme.
func (c *Composer) SetTheme(theme *ui.Theme) {
	c.SetFieldBackgroundColor(theme.BgColor)
	c.SetFieldTextColor(theme.FgColor)
	c.SetLabelColor(theme.MenuKeyColor)
	c.SetBackgroundColor(theme.BgColor)
}

// SetOnSend sets the callback when a message is submitted.
func (c *Composer) SetOnSend(fn func(text string)) {
	c.onSend = fn
}
