package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/metrics"
	"github.com/clack-chat/clack/internal/store"
)

// counterpart resolves the {username} URL parameter to a profile, or writes
// an error response and returns nil. The param arrives still escaped when the
// username contains a path-significant character such as "/".
func (h *Handler) counterpart(w http.ResponseWriter, r *http.Request) *store.Profile {
	username := chi.URLParam(r, "username")
	if decoded, err := url.PathUnescape(username); err == nil {
		username = decoded
	}
	profile, err := h.db.GetProfileByUsername(username)
	if err != nil {
		h.DomainError(w, err)
		return nil
	}
	if profile == nil {
		h.DomainError(w, chat.ErrUnknownUser)
		return nil
	}
	return profile
}

// Messages handles GET /v1/messages/{username}, returning the full
// conversation log oldest first.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	caller := h.claims(r)
	other := h.counterpart(w, r)
	if other == nil {
		return
	}

	msgs, err := h.db.PairMessages(caller.UserID, other.ID)
	if err != nil {
		h.DomainError(w, err)
		return
	}

	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageResponse{
			ID:        m.ID,
			Sender:    m.SenderName,
			Content:   m.Content,
			Timestamp: m.CreatedAt,
		})
	}
	h.JSON(w, http.StatusOK, out)
}

// Send handles POST /v1/messages/{username}.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	caller := h.claims(r)
	other := h.counterpart(w, r)
	if other == nil {
		return
	}

	var req SendRequest
	if err := h.decode(r, &req); err != nil {
		h.DomainError(w, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		h.DomainError(w, chat.ErrEmptyContent)
		return
	}

	msg, err := h.db.InsertMessage(caller.UserID, other.ID, content)
	if err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.MessagesSent.Inc()
	h.bus.Publish(bus.Event{
		Kind:      chat.EventMessageSent,
		Timestamp: time.Now(),
		Payload:   msg.ID,
	})

	h.JSON(w, http.StatusCreated, MessageResponse{
		ID:        msg.ID,
		Sender:    caller.Username,
		Content:   msg.Content,
		Timestamp: msg.CreatedAt,
	})
}

// MarkRead handles POST /v1/messages/{username}/read. It moves the caller's
// read marker for the counterpart to now.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller := h.claims(r)
	other := h.counterpart(w, r)
	if other == nil {
		return
	}

	if err := h.db.SetReadMarker(caller.UserID, other.ID); err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.ConversationsOpened.Inc()
	h.bus.Publish(bus.Event{
		Kind:      chat.EventMessageRead,
		Timestamp: time.Now(),
		Payload:   other.Username,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Unread handles GET /v1/messages/{username}/unread.
func (h *Handler) Unread(w http.ResponseWriter, r *http.Request) {
	caller := h.claims(r)
	other := h.counterpart(w, r)
	if other == nil {
		return
	}

	n, err := h.db.UnreadCount(caller.UserID, other.ID)
	if err != nil {
		h.DomainError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, UnreadResponse{Unread: n})
}
