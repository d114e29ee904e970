package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/tui/ui"
)

// ContactList is the main contact table. Contacts with unread messages get a
// marker and a count.
type ContactList struct {
	*tview.Table
	theme    *ui.Theme
	contacts []chat.Contact
}

// NewContactList creates the contact table.
func NewContactList(theme *ui.Theme) *ContactList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Contacts ")

	cl := &ContactList{Table: table, theme: theme}
	cl.applyTheme()
	return cl
}

// SetTheme swaps the list's color theme.
func (cl *ContactList) SetTheme(theme *ui.Theme) {
	cl.theme = theme
	cl.applyTheme()
	cl.Update(cl.contacts)
}

func (cl *ContactList) applyTheme() {
	cl.SetBackgroundColor(cl.theme.BgColor)
	cl.SetBorderColor(cl.theme.BorderColor)
	cl.SetTitleColor(cl.theme.TitleColor)
	cl.SetSelectedStyle(tcell.StyleDefault.
		Foreground(cl.theme.TableCursorFg).
		Background(cl.theme.TableCursorBg))
}

// Update refreshes the table with new data.
func (cl *ContactList) Update(contacts []chat.Contact) {
	cl.contacts = contacts
	cl.Clear()

	cl.SetCell(0, 0, tview.NewTableCell(" Username").
		SetSelectable(false).SetTextColor(cl.theme.TableHeaderFg))
	cl.SetCell(0, 1, tview.NewTableCell(" Unread").
		SetSelectable(false).SetTextColor(cl.theme.TableHeaderFg))

	for i, c := range contacts {
		row := i + 1
		name := c.Username
		unread := ""
		nameColor := cl.theme.FgColor
		if c.Unread > 0 {
			name = "* " + name
			unread = fmt.Sprintf("%d", c.Unread)
			nameColor = cl.theme.UnreadColor
		}
		cl.SetCell(row, 0, tview.NewTableCell(" "+name).
			SetTextColor(nameColor).SetMaxWidth(30).SetExpansion(1))
		cl.SetCell(row, 1, tview.NewTableCell(" "+unread).
			SetTextColor(cl.theme.UnreadColor).SetMaxWidth(8))
	}
}

// Selected returns the username of the highlighted contact, or "".
func (cl *ContactList) Selected() string {
	row, _ := cl.GetSelection()
	idx := row - 1 // header row
	if idx >= 0 && idx < len(cl.contacts) {
		return cl.contacts[idx].Username
	}
	return ""
}
