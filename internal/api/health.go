package api

import (
	"net/http"
	"time"

	"github.com/clack-chat/clack/internal/status"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	State       string `json:"state"`
	Since       string `json:"since"`
	Profiles    int64  `json:"profiles"`
	Messages    int64  `json:"messages"`
	Subscribers int    `json:"subscribers"`
	Timestamp   string `json:"timestamp"`
}

// Health handles GET /health. It reports the daemon's lifecycle state plus a
// few cheap counts; a non-SERVING state answers 503 so probes fail fast.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.db.ProfileCount()
	if err != nil {
		h.Error(w, http.StatusServiceUnavailable, CodeInternal, "database unavailable")
		return
	}
	messages, err := h.db.MessageCount()
	if err != nil {
		h.Error(w, http.StatusServiceUnavailable, CodeInternal, "database unavailable")
		return
	}

	state := h.machine.Current()
	statusCode := http.StatusOK
	if state != status.Serving {
		statusCode = http.StatusServiceUnavailable
	}

	h.JSON(w, statusCode, HealthResponse{
		State:       string(state),
		Since:       h.machine.Since().UTC().Format(time.RFC3339),
		Profiles:    profiles,
		Messages:    messages,
		Subscribers: h.bus.SubscriberCount(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
