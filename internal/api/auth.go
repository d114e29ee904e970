package api

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clack-chat/clack/internal/auth"
	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/metrics"
)

// Register handles POST /v1/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := h.decode(r, &req); err != nil {
		h.DomainError(w, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		h.DomainError(w, chat.ErrValidation)
		return
	}
	if req.Password != req.PasswordConfirm {
		h.DomainError(w, chat.ErrPasswordMismatch)
		return
	}

	existing, err := h.db.GetProfileByUsername(username)
	if err != nil {
		h.DomainError(w, err)
		return
	}
	if existing != nil {
		h.DomainError(w, chat.ErrDuplicateUsername)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.DomainError(w, err)
		return
	}
	profile, err := h.db.CreateProfile(username, hash)
	if err != nil {
		h.DomainError(w, err)
		return
	}

	token, err := h.tokens.Mint(profile.ID, profile.Username)
	if err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.ProfilesRegistered.Inc()
	h.bus.Publish(bus.Event{
		Kind:      chat.EventSessionStart,
		Timestamp: time.Now(),
		Payload:   profile.Username,
	})
	h.log.Info("profile registered", zap.String("username", profile.Username))

	h.JSON(w, http.StatusCreated, AuthResponse{
		Token:    token,
		UserID:   profile.ID,
		Username: profile.Username,
	})
}

// Login handles POST /v1/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.decode(r, &req); err != nil {
		h.DomainError(w, err)
		return
	}

	profile, err := h.db.GetProfileByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		h.DomainError(w, err)
		return
	}
	if profile == nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		h.DomainError(w, chat.ErrInvalidCredentials)
		return
	}

	ok, err := auth.VerifyPassword(req.Password, profile.PasswordHash)
	if err != nil || !ok {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		h.DomainError(w, chat.ErrInvalidCredentials)
		return
	}

	token, err := h.tokens.Mint(profile.ID, profile.Username)
	if err != nil {
		h.DomainError(w, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	h.bus.Publish(bus.Event{
		Kind:      chat.EventSessionStart,
		Timestamp: time.Now(),
		Payload:   profile.Username,
	})

	h.JSON(w, http.StatusOK, AuthResponse{
		Token:    token,
		UserID:   profile.ID,
		Username: profile.Username,
	})
}
