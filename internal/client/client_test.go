package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/clack-chat/clack/internal/api"
	"github.com/clack-chat/clack/internal/auth"
	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/chat"
	"github.com/clack-chat/clack/internal/status"
	"github.com/clack-chat/clack/internal/store"
)

func testClient(t *testing.T) *Client {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tokens, err := auth.NewTokens()
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	b := bus.New()
	machine := status.NewMachine(b)
	if err := machine.Transition(status.Migrating); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if err := machine.Transition(status.Serving); err != nil {
		t.Fatalf("transition: %v", err)
	}

	h := api.NewHandler(db, tokens, b, machine, zap.NewNop())
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClientSessionLifecycle(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	s, err := c.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if s != nil {
		t.Fatalf("fresh client has session %+v", s)
	}

	s, err = c.Register(ctx, "alice", "secret", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if s.Username != "alice" {
		t.Fatalf("session user = %q, want alice", s.Username)
	}

	s, err = c.CurrentSession(ctx)
	if err != nil || s == nil || s.Username != "alice" {
		t.Fatalf("current session = %+v, %v", s, err)
	}

	if err := c.Logout(ctx, s); err != nil {
		t.Fatalf("logout: %v", err)
	}
	s, err = c.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("current session after logout: %v", err)
	}
	if s != nil {
		t.Fatalf("session survived logout: %+v", s)
	}

	s, err = c.Login(ctx, "alice", "secret")
	if err != nil || s == nil {
		t.Fatalf("login after logout: %+v, %v", s, err)
	}
}

func TestClientErrorMapping(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	if _, err := c.Register(ctx, "alice", "secret", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := c.Register(ctx, "alice", "x", "x"); !errors.Is(err, chat.ErrDuplicateUsername) {
		t.Errorf("duplicate register err = %v, want ErrDuplicateUsername", err)
	}
	if _, err := c.Register(ctx, "bob", "x", "y"); !errors.Is(err, chat.ErrPasswordMismatch) {
		t.Errorf("mismatch register err = %v, want ErrPasswordMismatch", err)
	}
	if _, err := c.Login(ctx, "alice", "wrong"); !errors.Is(err, chat.ErrInvalidCredentials) {
		t.Errorf("bad login err = %v, want ErrInvalidCredentials", err)
	}
	if err := c.AddContact(ctx, "alice", "alice"); !errors.Is(err, chat.ErrSelfReference) {
		t.Errorf("self contact err = %v, want ErrSelfReference", err)
	}
	if err := c.AddContact(ctx, "alice", "nobody"); !errors.Is(err, chat.ErrUnknownUser) {
		t.Errorf("unknown contact err = %v, want ErrUnknownUser", err)
	}
	if _, err := c.Send(ctx, "alice", "nobody", "   "); !errors.Is(err, chat.ErrEmptyContent) {
		t.Errorf("blank send err = %v, want ErrEmptyContent", err)
	}
}

func TestClientConversation(t *testing.T) {
	alice := testClient(t)
	ctx := context.Background()

	if _, err := alice.Register(ctx, "alice", "secret", "secret"); err != nil {
		t.Fatalf("register alice: %v", err)
	}

	// Second client against the same server.
	bob := New(alice.baseURL)
	if _, err := bob.Register(ctx, "bob", "secret", "secret"); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if err := alice.AddContact(ctx, "alice", "bob"); err != nil {
		t.Fatalf("add contact: %v", err)
	}
	contacts, err := alice.ListContacts(ctx, "alice")
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Username != "bob" {
		t.Fatalf("contacts = %+v, want [bob]", contacts)
	}

	msg, err := alice.Send(ctx, "alice", "bob", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Sender != "alice" || msg.Content != "hello" {
		t.Fatalf("sent message = %+v", msg)
	}

	n, err := bob.UnreadCount(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}

	msgs, err := bob.Messages(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello" || msgs[0].Sender != "alice" {
		t.Fatalf("messages = %+v", msgs)
	}

	if err := bob.MarkRead(ctx, "bob", "alice"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	n, err = bob.UnreadCount(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("unread after read: %v", err)
	}
	if n != 0 {
		t.Errorf("unread after read = %d, want 0", n)
	}
}

func TestClientEscapesUsernamePath(t *testing.T) {
	alice := testClient(t)
	ctx := context.Background()

	if _, err := alice.Register(ctx, "alice", "secret", "secret"); err != nil {
		t.Fatalf("register alice: %v", err)
	}

	// Registration allows any non-blank string, including characters that
	// are significant in a URL path.
	odd := New(alice.baseURL)
	if _, err := odd.Register(ctx, "team/bob?", "secret", "secret"); err != nil {
		t.Fatalf("register team/bob?: %v", err)
	}

	if _, err := alice.Send(ctx, "alice", "team/bob?", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}

	msgs, err := odd.Messages(ctx, "team/bob?", "alice")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Fatalf("messages = %+v", msgs)
	}

	if err := odd.MarkRead(ctx, "team/bob?", "alice"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	n, err := odd.UnreadCount(ctx, "team/bob?", "alice")
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if n != 0 {
		t.Errorf("unread after read = %d, want 0", n)
	}
}

func TestClientBackendUnavailable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	ctx := context.Background()

	if _, err := c.Login(ctx, "alice", "secret"); !errors.Is(err, chat.ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}
