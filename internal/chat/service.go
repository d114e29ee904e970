// Package chat implements the direct-messaging core: session handling,
// contact edges, per-pair message logs, and read-marker based unread counts.
//
// The reference implementation (Store) persists everything in an injected
// kv.Store using the fixed key layout below; internal/client provides the
// hosted-backend implementation of the same Service interface.
//
//	users                        -> {"alice":"pw1","bob":"pw2"}
//	current_user                 -> "alice"
//	contacts_<owner>             -> ["bob","carl"]
//	messages_<sortedA>_<sortedB> -> [{"id","sender","content","timestamp"}]
//	messages_<a>_<b>_txt         -> "[12/05/2026 14:02] alice: hi"
//	lastread_<viewer>_<counterpart> -> "1764937320000"
//	theme                        -> "dark" | "light"
package chat

import "context"

// Session identifies an authenticated user. It is a value passed by callers
// rather than ambient state; the persisted current_user marker only exists so
// CurrentSession can survive restarts.
type Session struct {
	Username string
}

// Message is a single entry in a conversation log. Messages are append-only;
// they are never edited or deleted.
type Message struct {
	// ID is the creation time in unix milliseconds rendered as a string in
	// the local variant (not unique under rapid sends), a UUID in the hosted
	// variant.
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Contact is one entry in an owner's contact list with its derived unread
// count.
type Contact struct {
	Username string `json:"username"`
	Unread   int    `json:"unread"`
}

// Service is the contract shared by the local KV-backed core and the hosted
// HTTP client. All errors are the sentinels in errors.go, possibly wrapped.
type Service interface {
	// Register creates a credential record and an implicit empty contact
	// list, marks the session active, and returns it.
	Register(ctx context.Context, username, password, confirm string) (*Session, error)
	// Login checks the stored secret, marks the session active, and returns it.
	Login(ctx context.Context, username, password string) (*Session, error)
	// CurrentSession returns the persisted active session, or nil.
	CurrentSession(ctx context.Context) (*Session, error)
	// Logout clears the active-session marker. Credential records and all
	// other data survive.
	Logout(ctx context.Context, s *Session) error

	// ListContacts returns owner's contacts in insertion order, each with
	// its unread count. The owner is never included.
	ListContacts(ctx context.Context, owner string) ([]Contact, error)
	// AddContact inserts the directed edge owner -> candidate. The edge is
	// one-directional: candidate does not gain a reciprocal entry.
	AddContact(ctx context.Context, owner, candidate string) error

	// Messages returns the full log for the pair, oldest first.
	Messages(ctx context.Context, userA, userB string) ([]Message, error)
	// Send appends a message with trimmed text and the current time.
	// "Sent" and "delivered" are the same event.
	Send(ctx context.Context, sender, recipient, text string) (*Message, error)
	// MarkRead records now as viewer's read marker for the counterpart.
	// Must be called every time a conversation is opened for viewing.
	MarkRead(ctx context.Context, viewer, counterpart string) error
	// UnreadCount counts messages newer than viewer's read marker whose
	// sender is not the viewer.
	UnreadCount(ctx context.Context, viewer, counterpart string) (int, error)
	// Transcript returns the pair's log as plain text, one
	// "[time] sender: content" line per message.
	Transcript(ctx context.Context, userA, userB string) (string, error)
}

// Event kinds published on the bus by the local store and the daemon.
const (
	EventMessageSent  = "message.sent"
	EventMessageRead  = "message.read"
	EventContactAdded = "contact.added"
	EventSessionStart = "session.started"
	EventSessionEnd   = "session.ended"
)
