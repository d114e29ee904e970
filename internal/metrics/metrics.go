// Package metrics exposes the daemon's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clack_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clack_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	ProfilesRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clack_profiles_registered_total",
			Help: "Total profiles registered",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clack_logins_total",
			Help: "Total login attempts",
		},
		[]string{"result"}, // "ok" or "rejected"
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clack_messages_sent_total",
			Help: "Total direct messages stored",
		},
	)

	ContactsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clack_contacts_added_total",
			Help: "Total contact edges added",
		},
	)

	ConversationsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clack_conversations_opened_total",
			Help: "Total times a conversation was opened and marked read",
		},
	)
)
