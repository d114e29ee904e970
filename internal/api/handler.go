// Package api is the daemon's HTTP surface. Routes under /v1 mirror the chat
// service operations; errors carry a machine-readable code so clients can map
// them back to domain errors.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/clack-chat/clack/internal/auth"
	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/status"
	"github.com/clack-chat/clack/internal/store"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeValidation         = "validation"
	CodePasswordMismatch   = "password_mismatch"
	CodeDuplicateUsername  = "duplicate_username"
	CodeInvalidCredentials = "invalid_credentials"
	CodeSelfReference      = "self_reference"
	CodeUnknownUser        = "unknown_user"
	CodeAlreadyContact     = "already_contact"
	CodeEmptyContent       = "empty_content"
	CodeUnauthorized       = "unauthorized"
	CodeInternal           = "internal"
)

// ErrorResponse is the wire shape of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	db       *store.DB
	tokens   *auth.Tokens
	bus      *bus.Bus
	machine  *status.Machine
	log      *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(db *store.DB, tokens *auth.Tokens, b *bus.Bus, machine *status.Machine, log *zap.Logger) *Handler {
	return &Handler{
		db:       db,
		tokens:   tokens,
		bus:      b,
		machine:  machine,
		log:      log,
		validate: validator.New(),
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Warn("encode response", zap.Error(err))
	}
}

// Error sends a JSON error response with the given status and code.
func (h *Handler) Error(w http.ResponseWriter, statusCode int, code, message string) {
	h.JSON(w, statusCode, ErrorResponse{Code: code, Message: message})
}

// DomainError maps a chat domain error onto its HTTP status and code.
func (h *Handler) DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrValidation):
		h.Error(w, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, chat.ErrPasswordMismatch):
		h.Error(w, http.StatusBadRequest, CodePasswordMismatch, err.Error())
	case errors.Is(err, chat.ErrDuplicateUsername):
		h.Error(w, http.StatusConflict, CodeDuplicateUsername, err.Error())
	case errors.Is(err, chat.ErrInvalidCredentials):
		h.Error(w, http.StatusUnauthorized, CodeInvalidCredentials, err.Error())
	case errors.Is(err, chat.ErrSelfReference):
		h.Error(w, http.StatusBadRequest, CodeSelfReference, err.Error())
	case errors.Is(err, chat.ErrUnknownUser):
		h.Error(w, http.StatusNotFound, CodeUnknownUser, err.Error())
	case errors.Is(err, chat.ErrAlreadyContact):
		h.Error(w, http.StatusConflict, CodeAlreadyContact, err.Error())
	case errors.Is(err, chat.ErrEmptyContent):
		h.Error(w, http.StatusBadRequest, CodeEmptyContent, err.Error())
	default:
		h.log.Error("unhandled error", zap.Error(err))
		h.Error(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}

// decode parses the JSON body into dst and runs struct validation.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return chat.ErrValidation
	}
	if err := h.validate.Struct(dst); err != nil {
		return chat.ErrValidation
	}
	return nil
}
