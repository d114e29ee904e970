// Package model caches chat state for the TUI and mediates all service calls.
package model

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/tui/ui"
)

// MaxComposeLen caps the composer input length.
const MaxComposeLen = 2000

// ViewModel caches state from the chat service and signals UI refreshes. All
// service calls go through here; views only ever see snapshots.
type ViewModel struct {
	mu sync.RWMutex

	svc           chat.Service
	session       *chat.Session
	contacts      []chat.Contact
	messages      []chat.Message
	activeContact string

	Flash ui.FlashModel

	refreshCh chan struct{}
}

// NewViewModel creates a view model over the given service.
func NewViewModel(svc chat.Service) *ViewModel {
	return &ViewModel{
		svc:       svc,
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// RestoreSession loads a persisted session if one exists.
func (vm *ViewModel) RestoreSession(ctx context.Context) error {
	s, err := vm.svc.CurrentSession(ctx)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.session = s
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// Register creates an account and activates its session.
func (vm *ViewModel) Register(ctx context.Context, username, password, confirm string) error {
	s, err := vm.svc.Register(ctx, username, password, confirm)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.session = s
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// Login authenticates and activates the session.
func (vm *ViewModel) Login(ctx context.Context, username, password string) error {
	s, err := vm.svc.Login(ctx, username, password)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.session = s
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// Logout ends the session and clears all cached state.
func (vm *ViewModel) Logout(ctx context.Context) error {
	vm.mu.Lock()
	s := vm.session
	vm.mu.Unlock()
	if s == nil {
		return nil
	}
	if err := vm.svc.Logout(ctx, s); err != nil {
		return err
	}
	vm.mu.Lock()
	vm.session = nil
	vm.contacts = nil
	vm.messages = nil
	vm.activeContact = ""
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// Session returns the active session, or nil.
func (vm *ViewModel) Session() *chat.Session {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.session
}

// LoadContacts fetches the contact list with unread counts.
func (vm *ViewModel) LoadContacts(ctx context.Context) error {
	s := vm.Session()
	if s == nil {
		return nil
	}
	contacts, err := vm.svc.ListContacts(ctx, s.Username)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.contacts = contacts
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// AddContact adds a contact by username.
func (vm *ViewModel) AddContact(ctx context.Context, candidate string) error {
	s := vm.Session()
	if s == nil {
		return nil
	}
	if err := vm.svc.AddContact(ctx, s.Username, candidate); err != nil {
		return err
	}
	return vm.LoadContacts(ctx)
}

// OpenConversation loads the log for the counterpart and moves the read
// marker. Every open counts as reading.
func (vm *ViewModel) OpenConversation(ctx context.Context, counterpart string) error {
	s := vm.Session()
	if s == nil {
		return nil
	}
	msgs, err := vm.svc.Messages(ctx, s.Username, counterpart)
	if err != nil {
		return err
	}
	if err := vm.svc.MarkRead(ctx, s.Username, counterpart); err != nil {
		return err
	}
	vm.mu.Lock()
	vm.activeContact = counterpart
	vm.messages = msgs
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// RefreshConversation reloads the active log and marks it read again.
func (vm *ViewModel) RefreshConversation(ctx context.Context) error {
	vm.mu.RLock()
	counterpart := vm.activeContact
	vm.mu.RUnlock()
	if counterpart == "" {
		return nil
	}
	return vm.OpenConversation(ctx, counterpart)
}

// Send delivers a message to the active counterpart and reloads the log.
func (vm *ViewModel) Send(ctx context.Context, text string) error {
	s := vm.Session()
	vm.mu.RLock()
	counterpart := vm.activeContact
	vm.mu.RUnlock()
	if s == nil || counterpart == "" {
		return nil
	}
	if _, err := vm.svc.Send(ctx, s.Username, counterpart, text); err != nil {
		return err
	}
	return vm.RefreshConversation(ctx)
}

// Contacts returns a snapshot of the contact list.
func (vm *ViewModel) Contacts() []chat.Contact {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.contacts
}

// Messages returns a snapshot of the active conversation log.
func (vm *ViewModel) Messages() []chat.Message {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.messages
}

// ActiveContact returns the counterpart of the open conversation, or "".
func (vm *ViewModel) ActiveContact() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.activeContact
}

// ExportTranscript writes the active conversation as plain text to path,
// reading the transcript from the service rather than the cached log.
func (vm *ViewModel) ExportTranscript(ctx context.Context, path string) error {
	s := vm.Session()
	vm.mu.RLock()
	counterpart := vm.activeContact
	vm.mu.RUnlock()
	if s == nil || counterpart == "" {
		return fmt.Errorf("no open conversation")
	}

	text, err := vm.svc.Transcript(ctx, s.Username, counterpart)
	if err != nil {
		return err
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return os.WriteFile(path, []byte(text), 0600)
}
