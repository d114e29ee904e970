package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/clack-chat/clack/internal/tui/ui"
)

// StatusBar displays the profile, the signed-in user, the mode, and flash
// messages.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	profile string
	user    string
	mode    string
	flash   string
}

// NewStatusBar creates the status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)

	sb := &StatusBar{TextView: tv, theme: theme}
	sb.SetTheme(theme)
	return sb
}

// SetTheme swaps the bar's color theme.
func (sb *StatusBar) SetTheme(theme *ui.Theme) {
	sb.theme = theme
	sb.SetBackgroundColor(theme.TableCursorBg)
	sb.SetTextColor(theme.TableCursorFg)
	sb.render()
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetUser updates the signed-in username display.
func (sb *StatusBar) SetUser(name string) {
	sb.user = name
	sb.render()
}

// SetMode shows whether the TUI runs against the local store or a daemon.
func (sb *StatusBar) SetMode(mode string) {
	sb.mode = mode
	sb.render()
}

// SetFlash sets the transient message segment.
func (sb *StatusBar) SetFlash(msg string) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	user := sb.user
	if user == "" {
		user = "signed out"
	}
	clock := time.Now().Format("15:04")

	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s | %s | %s", sb.profile, sb.mode, user, clock)
	if sb.flash != "" {
		line += " | " + sb.flash
	}
	_, _ = fmt.Fprint(sb, line)
}
