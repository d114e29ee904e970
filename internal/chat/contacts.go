package chat

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/clack-chat/clack/internal/kv"
)

func (s *Store) loadContacts(owner string) ([]string, error) {
	var list []string
	err := s.getJSON(contactsKey(owner), &list)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListContacts returns owner's contacts in insertion order with their unread
// counts. A self-edge, should one ever exist in storage, is filtered out.
func (s *Store) ListContacts(ctx context.Context, owner string) ([]Contact, error) {
	list, err := s.loadContacts(owner)
	if err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, len(list))
	for _, name := range list {
		if name == owner {
			continue
		}
		unread, err := s.UnreadCount(ctx, owner, name)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, Contact{Username: name, Unread: unread})
	}
	return contacts, nil
}

// AddContact inserts the directed edge owner -> candidate. Adding B from A's
// side does not give B an entry for A.
func (s *Store) AddContact(_ context.Context, owner, candidate string) error {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ErrUnknownUser
	}
	if candidate == owner {
		return ErrSelfReference
	}

	creds, err := s.loadCredentials()
	if err != nil {
		return err
	}
	if _, ok := creds[candidate]; !ok {
		return ErrUnknownUser
	}

	list, err := s.loadContacts(owner)
	if err != nil {
		return err
	}
	if slices.Contains(list, candidate) {
		return ErrAlreadyContact
	}
	if err := s.setJSON(contactsKey(owner), append(list, candidate)); err != nil {
		return err
	}

	s.publish(EventContactAdded, owner+" -> "+candidate)
	return nil
}
