package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/clack-chat/clack/internal/kv"
)

// credentials is the persisted username -> secret directory. Usernames are
// unique by construction (map keys); one record per username.
type credentials map[string]string

func (s *Store) loadCredentials() (credentials, error) {
	creds := credentials{}
	err := s.getJSON(keyUsers, &creds)
	if errors.Is(err, kv.ErrNotFound) {
		return creds, nil
	}
	if err != nil {
		return nil, err
	}
	return creds, nil
}

// Register creates a credential record for username and an implicit empty
// contact list, then marks the session active. Validation runs before any
// persistence access.
func (s *Store) Register(_ context.Context, username, password, confirm string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, ErrValidation
	}
	// Compared and stored as typed; only the username is normalized.
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	creds, err := s.loadCredentials()
	if err != nil {
		return nil, err
	}
	if _, exists := creds[username]; exists {
		return nil, ErrDuplicateUsername
	}
	creds[username] = password
	if err := s.setJSON(keyUsers, creds); err != nil {
		return nil, err
	}
	if err := s.setJSON(contactsKey(username), []string{}); err != nil {
		return nil, err
	}

	return s.activate(username)
}

// Login validates the stored secret and marks the session active. An unknown
// username and a wrong password both fail with ErrInvalidCredentials; no
// session is established on failure.
func (s *Store) Login(_ context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, ErrValidation
	}

	creds, err := s.loadCredentials()
	if err != nil {
		return nil, err
	}
	secret, ok := creds[username]
	if !ok || secret != password {
		return nil, ErrInvalidCredentials
	}

	return s.activate(username)
}

// activate overwrites the single process-wide active-session marker. Only one
// active session is representable; a new login replaces the previous one.
func (s *Store) activate(username string) (*Session, error) {
	if err := s.db.Set(keyCurrentUser, []byte(username)); err != nil {
		return nil, err
	}
	s.publish(EventSessionStart, username)
	return &Session{Username: username}, nil
}

// CurrentSession returns the session persisted by a prior register or login,
// or nil if none is marked active.
func (s *Store) CurrentSession(_ context.Context) (*Session, error) {
	raw, err := s.db.Get(keyCurrentUser)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Session{Username: string(raw)}, nil
}

// Logout clears the active-session marker. The credential record and all
// conversation data stay.
func (s *Store) Logout(_ context.Context, sess *Session) error {
	if err := s.db.Delete(keyCurrentUser); err != nil {
		return err
	}
	if sess != nil {
		s.publish(EventSessionEnd, sess.Username)
	}
	return nil
}
