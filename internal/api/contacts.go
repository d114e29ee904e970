package api

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/metrics"
)

// ListContacts handles GET /v1/contacts. Each entry carries the caller's
// unread count for that counterpart.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	caller := h.claims(r)

	profiles, err := h.db.ListContacts(caller.UserID)
	if err != nil {
		h.DomainError(w, err)
		return
	}

	out := make([]ContactResponse, 0, len(profiles))
	for _, p := range profiles {
		unread, err := h.db.UnreadCount(caller.UserID, p.ID)
		if err != nil {
			h.DomainError(w, err)
			return
		}
		out = append(out, ContactResponse{Username: p.Username, Unread: unread})
	}
	h.JSON(w, http.StatusOK, out)
}

// AddContact handles POST /v1/contacts.
func (h *Handler) AddContact(w http.ResponseWriter, r *http.Request) {
	caller := h.claims(r)

	var req AddContactRequest
	if err := h.decode(r, &req); err != nil {
		h.DomainError(w, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		h.DomainError(w, chat.ErrUnknownUser)
		return
	}
	if username == caller.Username {
		h.DomainError(w, chat.ErrSelfReference)
		return
	}

	contact, err := h.db.GetProfileByUsername(username)
	if err != nil {
		h.DomainError(w, err)
		return
	}
	if contact == nil {
		h.DomainError(w, chat.ErrUnknownUser)
		return
	}

	has, err := h.db.HasContact(caller.UserID, contact.ID)
	if err != nil {
		h.DomainError(w, err)
		return
	}
	if has {
		h.DomainError(w, chat.ErrAlreadyContact)
		return
	}

	if err := h.db.AddContact(caller.UserID, contact.ID); err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.ContactsAdded.Inc()
	h.bus.Publish(bus.Event{
		Kind:      chat.EventContactAdded,
		Timestamp: time.Now(),
		Payload:   contact.Username,
	})
	h.log.Info("contact added",
		zap.String("owner", caller.Username),
		zap.String("contact", contact.Username))

	h.JSON(w, http.StatusCreated, ContactResponse{Username: contact.Username})
}
