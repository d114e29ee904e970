// Package keys is the TUI's keybinding registry, scoped per page with a
// global fallback.
package keys

import (
	"github.com/gdamore/tcell/v2"

	"github.com/clack-chat/clack/internal/tui/ui"
)

// Action represents a keybinding action.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Description string
	Handler     func()
	Visible     bool
}

// Matches reports whether the event triggers this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

type binding struct {
	name   string
	action *Action
}

// Registry holds keybindings organized by page scope. Bindings keep their
// registration order so menu hints render stably.
type Registry struct {
	global []binding
	pages  map[string][]binding
}

// NewRegistry creates an empty keybinding registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string][]binding)}
}

// AddGlobal registers a keybinding active on every page.
func (r *Registry) AddGlobal(name string, action *Action) {
	r.global = append(r.global, binding{name, action})
}

// AddPage registers a keybinding active only on the named page.
func (r *Registry) AddPage(page, name string, action *Action) {
	r.pages[page] = append(r.pages[page], binding{name, action})
}

// Hints returns visible keybinding hints for a page, page-scoped first.
func (r *Registry) Hints(page string) []ui.MenuHint {
	var hints []ui.MenuHint
	for _, b := range r.pages[page] {
		if b.action.Visible {
			hints = append(hints, ui.MenuHint{Key: keyLabel(b.action), Description: b.action.Description})
		}
	}
	for _, b := range r.global {
		if b.action.Visible {
			hints = append(hints, ui.MenuHint{Key: keyLabel(b.action), Description: b.action.Description})
		}
	}
	return hints
}

// HandleEvent dispatches a key event for the given page. Page bindings win
// over global ones. Returns true if a handler ran.
func (r *Registry) HandleEvent(page string, ev *tcell.EventKey) bool {
	for _, b := range r.pages[page] {
		if b.action.Matches(ev) {
			b.action.Handler()
			return true
		}
	}
	for _, b := range r.global {
		if b.action.Matches(ev) {
			b.action.Handler()
			return true
		}
	}
	return false
}

func keyLabel(a *Action) string {
	if a.Key == tcell.KeyRune {
		return string(a.Rune)
	}
	return tcell.KeyNames[a.Key]
}
