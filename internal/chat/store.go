package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/kv"
)

// Persisted key layout; the package comment shows the full map.
const (
	keyUsers       = "users"
	keyCurrentUser = "current_user"
	keyTheme       = "theme"

	prefixContacts = "contacts_"
	prefixMessages = "messages_"
	prefixLastRead = "lastread_"

	transcriptSuffix = "_txt"
)

// Store is the KV-backed implementation of Service. Every operation is a
// synchronous read or whole-value read-modify-write against the injected
// kv.Store; concurrent writers to the same log are last-write-wins.
type Store struct {
	db  kv.Store
	bus *bus.Bus
	now func() time.Time
}

// New creates a Store over db. The bus may be nil; when set, mutations
// publish message.*, contact.* and session.* events.
func New(db kv.Store, b *bus.Bus) *Store {
	return &Store{db: db, bus: b, now: time.Now}
}

// ConversationKey derives the canonical log key for a pair of users: the two
// usernames sorted lexicographically, joined with "_" under the messages
// prefix. Identical regardless of argument order.
func ConversationKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return prefixMessages + pair[0] + "_" + pair[1]
}

func contactsKey(owner string) string {
	return prefixContacts + owner
}

func lastReadKey(viewer, counterpart string) string {
	return prefixLastRead + viewer + "_" + counterpart
}

func (s *Store) publish(kind string, payload any) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(bus.Event{Kind: kind, Timestamp: s.now(), Payload: payload})
}

// getJSON reads key and decodes it strictly into v. Missing keys return
// kv.ErrNotFound; a value that does not match v's schema is an error, never
// silently coerced.
func (s *Store) getJSON(key string, v any) error {
	raw, err := s.db.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.db.Set(key, raw)
}

// Theme returns the persisted display theme, defaulting to "dark".
func (s *Store) Theme() (string, error) {
	raw, err := s.db.Get(keyTheme)
	if errors.Is(err, kv.ErrNotFound) {
		return "dark", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SetTheme persists the display theme ("dark" or "light").
func (s *Store) SetTheme(theme string) error {
	return s.db.Set(keyTheme, []byte(theme))
}
