package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/tui/ui"
)

// MessageThread displays a single conversation, oldest first, with a date
// separator whenever the calendar day changes.
type MessageThread struct {
	*tview.TextView
	theme *ui.Theme
	self  string
	msgs  []chat.Message
	now   func() time.Time
}

// NewMessageThread creates the conversation view.
func NewMessageThread(theme *ui.Theme) *MessageThread {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Conversation ")

	mt := &MessageThread{TextView: tv, theme: theme, now: time.Now}
	mt.applyTheme()
	return mt
}

// SetTheme swaps the view's color theme.
func (mt *MessageThread) SetTheme(theme *ui.Theme) {
	mt.theme = theme
	mt.applyTheme()
	mt.Update(mt.msgs)
}

func (mt *MessageThread) applyTheme() {
	mt.SetBackgroundColor(mt.theme.BgColor)
	mt.SetBorderColor(mt.theme.BorderColor)
	mt.SetTitleColor(mt.theme.TitleColor)
	mt.SetTextColor(mt.theme.FgColor)
}

// SetSelf sets the viewing user so their messages render distinctly.
func (mt *MessageThread) SetSelf(username string) {
	mt.self = username
}

// SetCounterpart updates the title with the counterpart's name.
func (mt *MessageThread) SetCounterpart(name string) {
	mt.SetTitle(fmt.Sprintf(" %s ", name))
}

// Update refreshes the view with new messages.
func (mt *MessageThread) Update(msgs []chat.Message) {
	mt.msgs = msgs
	mt.Clear()

	var prevDay string
	for _, m := range msgs {
		t := time.UnixMilli(m.Timestamp)
		day := t.Format("2006-01-02")
		if day != prevDay {
			label := dayLabel(t, mt.now())
			_, _ = fmt.Fprintf(mt, "%s\n", ui.Tag(mt.theme.SeparatorColor, "--- "+label+" ---"))
			prevDay = day
		}

		sender := m.Sender
		senderColor := mt.theme.TitleColor
		if sender == mt.self {
			sender = "You"
			senderColor = mt.theme.OwnMessageColor
		}
		_, _ = fmt.Fprintf(mt, "%s %s\n%s\n\n",
			ui.BoldTag(senderColor, sender),
			ui.Tag(mt.theme.SeparatorColor, t.Format("15:04")),
			tview.Escape(sanitizeForTerminal(m.Content)))
	}

	mt.ScrollToEnd()
}

// dayLabel renders a date separator: Today, Yesterday, or the date.
func dayLabel(t, now time.Time) string {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	switch t.Format("2006-01-02") {
	case today:
		return "Today"
	case yesterday:
		return "Yesterday"
	default:
		return t.Format("January 2, 2006")
	}
}
