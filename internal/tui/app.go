// Package tui is the terminal client shell. It runs the same screens over
// either the local KV-backed store or a remote daemon.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/profile"
	"github.com/clack-chat/clack/internal/tui/keys"
	"github.com/clack-chat/clack/internal/tui/model"
	"github.com/clack-chat/clack/internal/tui/ui"
	"github.com/clack-chat/clack/internal/tui/views"
)

// ThemePrefs persists the chosen theme name across restarts.
type ThemePrefs interface {
	Theme() (string, error)
	SetTheme(name string) error
}

// Options configures the TUI shell.
type Options struct {
	ProfileName string
	Mode        string // "local" or "remote", shown in the status bar
	Bus         *bus.Bus
	Prefs       ThemePrefs
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	vm       *model.ViewModel
	registry *keys.Registry
	theme    *ui.Theme
	opts     Options

	statusBar *views.StatusBar
	menu      *ui.Menu
	contacts  *views.ContactList
	thread    *views.MessageThread
	composer  *views.Composer
	authForm  *views.AuthForm
	prompt    *ui.Prompt

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application over the given chat service.
func NewApp(svc chat.Service, opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())

	theme := ui.DarkTheme()
	if opts.Prefs != nil {
		if name, err := opts.Prefs.Theme(); err == nil {
			theme = ui.ByName(name)
		}
	}

	a := &App{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		vm:        model.NewViewModel(svc),
		registry:  keys.NewRegistry(),
		theme:     theme,
		opts:      opts,
		statusBar: views.NewStatusBar(theme),
		menu:      ui.NewMenu(theme),
		contacts:  views.NewContactList(theme),
		thread:    views.NewMessageThread(theme),
		composer:  views.NewComposer(theme),
		authForm:  views.NewAuthForm(theme),
		prompt:    ui.NewPrompt(theme),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.statusBar.SetProfile(opts.ProfileName)
	a.statusBar.SetMode(opts.Mode)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "quit", Visible: true,
		Handler: func() { a.app.Stop() },
	})
	a.registry.AddGlobal("theme", &keys.Action{
		Rune: 't', Key: tcell.KeyRune,
		Description: "theme", Visible: true,
		Handler: func() { a.toggleTheme() },
	})
	a.registry.AddPage("contacts", "add", &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "add contact", Visible: true,
		Handler: func() { a.showAddContact() },
	})
	a.registry.AddPage("contacts", "signout", &keys.Action{
		Rune: 'o', Key: tcell.KeyRune,
		Description: "sign out", Visible: true,
		Handler: func() { a.signOut() },
	})
	a.registry.AddPage("thread", "export", &keys.Action{
		Rune: 'e', Key: tcell.KeyRune,
		Description: "export", Visible: true,
		Handler: func() { a.exportTranscript() },
	})
	a.registry.AddPage("thread", "refresh", &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "refresh", Visible: true,
		Handler: func() { a.refreshThread() },
	})
}

func (a *App) setupCallbacks() {
	a.authForm.SetOnLogin(func(username, password string) {
		go func() {
			if err := a.vm.Login(a.ctx, username, password); err != nil {
				a.vm.Flash.Err(err)
				a.redraw()
				return
			}
			a.enterContacts()
		}()
	})
	a.authForm.SetOnRegister(func(username, password, confirm string) {
		go func() {
			if err := a.vm.Register(a.ctx, username, password, confirm); err != nil {
				a.vm.Flash.Err(err)
				a.redraw()
				return
			}
			a.enterContacts()
		}()
	})

	a.contacts.SetSelectedFunc(func(row, col int) {
		if name := a.contacts.Selected(); name != "" {
			a.openThread(name)
		}
	})

	a.composer.SetOnSend(func(text string) {
		go func() {
			if err := a.vm.Send(a.ctx, text); err != nil {
				a.vm.Flash.Err(err)
			}
			a.app.QueueUpdateDraw(func() {
				a.thread.Update(a.vm.Messages())
				a.renderFlash()
			})
		}()
	})

	a.prompt.SetOnSubmit(func(text string) {
		a.pages.HidePage("prompt")
		a.app.SetFocus(a.contacts)
		go func() {
			if err := a.vm.AddContact(a.ctx, text); err != nil {
				a.vm.Flash.Err(err)
			} else {
				a.vm.Flash.Info("Added " + text)
			}
			a.app.QueueUpdateDraw(func() {
				a.contacts.Update(a.vm.Contacts())
				a.renderFlash()
			})
		}()
	})
	a.prompt.SetOnCancel(func() {
		a.pages.HidePage("prompt")
		a.app.SetFocus(a.contacts)
	})
}

func (a *App) setupLayout() {
	threadFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.thread, 0, 1, false).
		AddItem(a.composer, 1, 0, false)

	authFlex := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(a.authForm, 13, 0, true).
			AddItem(nil, 0, 1, false), 48, 0, true).
		AddItem(nil, 0, 1, false)

	promptFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(a.prompt, 3, 0, true)

	a.pages.AddPage("auth", authFlex, true, true)
	a.pages.AddPage("contacts", a.contacts, true, false)
	a.pages.AddPage("thread", threadFlex, true, false)
	a.pages.AddPage("prompt", promptFlex, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.menu, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentPage, _ := a.pages.GetFrontPage()

		if event.Key() == tcell.KeyEscape && currentPage == "thread" {
			a.enterContacts()
			return nil
		}

		// Text inputs get every key.
		focused := a.app.GetFocus()
		if _, ok := focused.(*tview.InputField); ok {
			return event
		}
		if currentPage == "auth" {
			return event
		}

		if currentPage == "thread" && event.Key() == tcell.KeyRune && event.Rune() == 'i' {
			a.app.SetFocus(a.composer.InputField)
			return nil
		}

		if a.registry.HandleEvent(currentPage, event) {
			return nil
		}
		return event
	})
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.cancel()

	go func() {
		if err := a.vm.RestoreSession(a.ctx); err != nil {
			a.vm.Flash.Err(err)
		}
		if a.vm.Session() != nil {
			a.enterContacts()
		} else {
			a.app.QueueUpdateDraw(func() { a.switchTo("auth") })
		}
		a.startRefreshLoop()
		if a.opts.Bus != nil {
			a.watchBus()
		}
	}()

	return a.app.Run()
}

func (a *App) enterContacts() {
	go func() {
		if err := a.vm.LoadContacts(a.ctx); err != nil {
			a.vm.Flash.Err(err)
		}
		a.app.QueueUpdateDraw(func() {
			s := a.vm.Session()
			if s != nil {
				a.statusBar.SetUser(s.Username)
				a.thread.SetSelf(s.Username)
			}
			a.contacts.Update(a.vm.Contacts())
			a.switchTo("contacts")
			a.app.SetFocus(a.contacts)
			a.renderFlash()
		})
	}()
}

func (a *App) openThread(counterpart string) {
	go func() {
		if err := a.vm.OpenConversation(a.ctx, counterpart); err != nil {
			a.vm.Flash.Err(err)
			a.redraw()
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.thread.SetCounterpart(counterpart)
			a.thread.Update(a.vm.Messages())
			a.switchTo("thread")
			a.app.SetFocus(a.thread)
			a.renderFlash()
		})
	}()
}

func (a *App) refreshThread() {
	go func() {
		if err := a.vm.RefreshConversation(a.ctx); err != nil {
			a.vm.Flash.Err(err)
		}
		a.app.QueueUpdateDraw(func() {
			a.thread.Update(a.vm.Messages())
			a.renderFlash()
		})
	}()
}

func (a *App) signOut() {
	go func() {
		if err := a.vm.Logout(a.ctx); err != nil {
			a.vm.Flash.Err(err)
			a.redraw()
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.statusBar.SetUser("")
			a.authForm.SwitchMode(false)
			a.switchTo("auth")
		})
	}()
}

func (a *App) showAddContact() {
	a.prompt.Activate("@", "Add contact")
	a.pages.ShowPage("prompt")
	a.app.SetFocus(a.prompt)
}

func (a *App) exportTranscript() {
	counterpart := a.vm.ActiveContact()
	if counterpart == "" {
		return
	}
	name := fmt.Sprintf("%s-%s.txt", counterpart, time.Now().Format("20060102-150405"))
	path := filepath.Join(profile.ExportDir(a.opts.ProfileName), name)
	if err := a.vm.ExportTranscript(a.ctx, path); err != nil {
		a.vm.Flash.Err(err)
	} else {
		a.vm.Flash.Info("Exported to " + path)
	}
	a.renderFlash()
}

func (a *App) toggleTheme() {
	a.theme = a.theme.Next()
	if a.opts.Prefs != nil {
		if err := a.opts.Prefs.SetTheme(a.theme.Name); err != nil {
			a.vm.Flash.Warn("theme not saved: " + err.Error())
		}
	}
	a.statusBar.SetTheme(a.theme)
	a.menu.SetTheme(a.theme)
	a.contacts.SetTheme(a.theme)
	a.thread.SetTheme(a.theme)
	a.composer.SetTheme(a.theme)
	a.authForm.SetTheme(a.theme)
	a.renderMenu()
	a.renderFlash()
}

// switchTo changes the front page and refreshes the menu hints.
func (a *App) switchTo(page string) {
	a.pages.SwitchToPage(page)
	a.renderMenu()
}

func (a *App) renderMenu() {
	currentPage, _ := a.pages.GetFrontPage()
	a.menu.Update(a.registry.Hints(currentPage))
}

func (a *App) renderFlash() {
	a.statusBar.SetFlash(a.vm.Flash.Render(a.theme))
}

func (a *App) redraw() {
	a.app.QueueUpdateDraw(a.renderFlash)
}

func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(3 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.refreshCurrentPage()
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// watchBus refreshes immediately on message events instead of waiting for
// the next poll tick. Only wired in local mode, where the store publishes on
// the same in-process bus.
func (a *App) watchBus() {
	events, unsub := a.opts.Bus.Subscribe("message.", 16)
	go func() {
		defer unsub()
		for {
			select {
			case <-events:
				a.refreshCurrentPage()
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

func (a *App) refreshCurrentPage() {
	if a.vm.Session() == nil {
		return
	}
	currentPage, _ := a.pages.GetFrontPage()
	switch currentPage {
	case "contacts":
		_ = a.vm.LoadContacts(a.ctx)
		a.app.QueueUpdateDraw(func() {
			a.contacts.Update(a.vm.Contacts())
			a.renderFlash()
		})
	case "thread":
		_ = a.vm.RefreshConversation(a.ctx)
		a.app.QueueUpdateDraw(func() {
			a.thread.Update(a.vm.Messages())
			a.renderFlash()
		})
	}
}
