package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/kv"
)

func TestConversationKeySymmetric(t *testing.T) {
	cases := []struct{ a, b, want string }{
		{"alice", "bob", "messages_alice_bob"},
		{"bob", "alice", "messages_alice_bob"},
		{"zed", "amy", "messages_amy_zed"},
	}
	for _, tc := range cases {
		if got := ConversationKey(tc.a, tc.b); got != tc.want {
			t.Errorf("ConversationKey(%s, %s) = %q, want %q", tc.a, tc.b, got, tc.want)
		}
	}
	if ConversationKey("alice", "bob") != ConversationKey("bob", "alice") {
		t.Error("key must not depend on argument order")
	}
}

func TestSendAppends(t *testing.T) {
	s, clk := testStore(t)
	ctx := context.Background()

	msg, err := s.Send(ctx, "alice", "bob", "  hi there  ")
	if err != nil {
		t.Fatal(err)
	}
	if msg.Sender != "alice" {
		t.Errorf("sender = %q, want alice", msg.Sender)
	}
	if msg.Content != "hi there" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hi there")
	}
	if msg.Timestamp != clk.at.UnixMilli() {
		t.Errorf("timestamp = %d, want %d", msg.Timestamp, clk.at.UnixMilli())
	}
	if msg.ID != "1000000" {
		t.Errorf("id = %q, want creation time as string", msg.ID)
	}

	// loadMessages(B, A) sees the same log, oldest first.
	clk.advance(time.Second)
	if _, err := s.Send(ctx, "bob", "alice", "hello"); err != nil {
		t.Fatal(err)
	}
	log, err := s.Messages(ctx, "bob", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Fatalf("got %d messages, want 2", len(log))
	}
	if log[0].Sender != "alice" || log[1].Sender != "bob" {
		t.Errorf("order = [%s %s], want [alice bob]", log[0].Sender, log[1].Sender)
	}
}

func TestSendEmptyContent(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	if _, err := s.Send(ctx, "alice", "bob", "hi"); err != nil {
		t.Fatal(err)
	}

	for _, text := range []string{"", "   ", "\n\t "} {
		if _, err := s.Send(ctx, "alice", "bob", text); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyContent", text, err)
		}
	}

	// The log length is unchanged by the rejected sends.
	log, err := s.Messages(ctx, "alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 {
		t.Errorf("log length = %d, want 1", len(log))
	}
}

func TestMessagesEmptyBeforeFirstSend(t *testing.T) {
	s, _ := testStore(t)

	log, err := s.Messages(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if log == nil || len(log) != 0 {
		t.Errorf("log = %v, want empty non-nil slice", log)
	}
}

func TestUnreadCount(t *testing.T) {
	s, clk := testStore(t)
	ctx := context.Background()

	// Before any marker, counterpart messages count from the beginning.
	clk.advance(time.Second)
	if _, err := s.Send(ctx, "bob", "alice", "one"); err != nil {
		t.Fatal(err)
	}
	n, err := s.UnreadCount(ctx, "alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}

	// Zero immediately after MarkRead.
	clk.advance(time.Second)
	if err := s.MarkRead(ctx, "alice", "bob"); err != nil {
		t.Fatal(err)
	}
	if n, _ = s.UnreadCount(ctx, "alice", "bob"); n != 0 {
		t.Errorf("unread after MarkRead = %d, want 0", n)
	}

	// Each later counterpart send adds exactly one.
	for i := 1; i <= 3; i++ {
		clk.advance(time.Second)
		if _, err := s.Send(ctx, "bob", "alice", "more"); err != nil {
			t.Fatal(err)
		}
		if n, _ = s.UnreadCount(ctx, "alice", "bob"); n != i {
			t.Errorf("unread = %d, want %d", n, i)
		}
	}

	// Messages from self never count as unread for self.
	clk.advance(time.Second)
	if _, err := s.Send(ctx, "alice", "bob", "reply"); err != nil {
		t.Fatal(err)
	}
	if n, _ = s.UnreadCount(ctx, "alice", "bob"); n != 3 {
		t.Errorf("unread after own send = %d, want 3", n)
	}
}

func TestUnreadCountMarkerIsStrict(t *testing.T) {
	s, clk := testStore(t)
	ctx := context.Background()

	// A message stamped exactly at the marker time is already read: the
	// count requires timestamp strictly greater than the marker.
	if err := s.MarkRead(ctx, "alice", "bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Send(ctx, "bob", "alice", "same instant"); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.UnreadCount(ctx, "alice", "bob"); n != 0 {
		t.Errorf("unread = %d, want 0 for message at marker time", n)
	}

	clk.advance(time.Millisecond)
	if _, err := s.Send(ctx, "bob", "alice", "later"); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.UnreadCount(ctx, "alice", "bob"); n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}
}

func TestMarkReadOverwritesOnEveryOpen(t *testing.T) {
	s, clk := testStore(t)
	ctx := context.Background()

	if err := s.MarkRead(ctx, "alice", "bob"); err != nil {
		t.Fatal(err)
	}
	first, err := s.readMarker("alice", "bob")
	if err != nil {
		t.Fatal(err)
	}

	// Re-opening with no new messages still moves the marker.
	clk.advance(time.Minute)
	if err := s.MarkRead(ctx, "alice", "bob"); err != nil {
		t.Fatal(err)
	}
	second, err := s.readMarker("alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Errorf("marker did not advance: first=%d second=%d", first, second)
	}
}

func TestReadMarkersAreDirectional(t *testing.T) {
	s, clk := testStore(t)
	ctx := context.Background()

	clk.advance(time.Second)
	if _, err := s.Send(ctx, "alice", "bob", "hi"); err != nil {
		t.Fatal(err)
	}

	clk.advance(time.Second)
	if err := s.MarkRead(ctx, "bob", "alice"); err != nil {
		t.Fatal(err)
	}

	// Bob's marker does not affect alice's view of bob's messages.
	clk.advance(time.Second)
	if _, err := s.Send(ctx, "bob", "alice", "yo"); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.UnreadCount(ctx, "alice", "bob"); n != 1 {
		t.Errorf("alice unread = %d, want 1", n)
	}
	if n, _ := s.UnreadCount(ctx, "bob", "alice"); n != 0 {
		t.Errorf("bob unread = %d, want 0", n)
	}
}

// TestRegisterThroughFirstMessage walks the end-to-end scenario: register two
// users, add a contact, send, and observe the unread badge on the other side.
func TestRegisterThroughFirstMessage(t *testing.T) {
	s, clk := testStore(t)
	ctx := context.Background()

	mustRegister(t, s, "alice", "pw1")
	mustRegister(t, s, "bob", "pw2")

	if err := s.AddContact(ctx, "alice", "bob"); err != nil {
		t.Fatal(err)
	}

	clk.advance(time.Second)
	if _, err := s.Send(ctx, "alice", "bob", "hi"); err != nil {
		t.Fatal(err)
	}

	log, err := s.Messages(ctx, "bob", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 || log[0].Sender != "alice" || log[0].Content != "hi" {
		t.Fatalf("bob's view = %v, want one message alice/hi", log)
	}

	n, err := s.UnreadCount(ctx, "bob", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("bob unread before any MarkRead = %d, want 1", n)
	}
}

func TestTranscriptMirror(t *testing.T) {
	s, clk := testStore(t)
	ctx := context.Background()

	if _, err := s.Send(ctx, "alice", "bob", "hi"); err != nil {
		t.Fatal(err)
	}
	clk.advance(time.Second)
	if _, err := s.Send(ctx, "bob", "alice", "hello"); err != nil {
		t.Fatal(err)
	}

	text, err := s.Transcript(ctx, "bob", "alice")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("transcript has %d lines, want 2:\n%s", len(lines), text)
	}
	if !strings.HasSuffix(lines[0], "alice: hi") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "bob: hello") {
		t.Errorf("line 1 = %q", lines[1])
	}

	// No transcript yet for an untouched pair.
	text, err = s.Transcript(ctx, "carl", "dave")
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Errorf("transcript = %q, want empty", text)
	}
}

func TestSendPublishesEvent(t *testing.T) {
	b := bus.New()
	s := New(kv.NewMemory(), b)

	ch, unsub := b.Subscribe("message.", 8)
	defer unsub()

	if _, err := s.Send(context.Background(), "alice", "bob", "hi"); err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-ch:
		if evt.Kind != EventMessageSent {
			t.Errorf("kind = %q, want %q", evt.Kind, EventMessageSent)
		}
		msg, ok := evt.Payload.(Message)
		if !ok || msg.Content != "hi" {
			t.Errorf("payload = %#v, want sent message", evt.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message.sent event")
	}
}

func TestRejectsMalformedStoredLog(t *testing.T) {
	mem := kv.NewMemory()
	s := New(mem, nil)

	// A log that is not a message array must be rejected, not coerced.
	if err := mem.Set(ConversationKey("alice", "bob"), []byte(`{"oops":true}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Messages(context.Background(), "alice", "bob"); err == nil {
		t.Error("Messages on malformed log succeeded, want decode error")
	}
}
