package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clack-chat/clack/internal/kv"
)

// transcriptTimeLayout formats timestamps in the plain-text mirror.
const transcriptTimeLayout = "01/02/2006 15:04:05"

func (s *Store) loadLog(key string) ([]Message, error) {
	var log []Message
	err := s.getJSON(key, &log)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

// Messages returns the full log for the pair in send order, oldest first.
// The log is empty until the first send.
func (s *Store) Messages(_ context.Context, userA, userB string) ([]Message, error) {
	log, err := s.loadLog(ConversationKey(userA, userB))
	if err != nil {
		return nil, err
	}
	if log == nil {
		return []Message{}, nil
	}
	return log, nil
}

// Send appends a message to the pair's log and persists the whole log plus
// its plain-text mirror. The write is a read-modify-write of the full log
// object; simultaneous senders are last-write-wins.
func (s *Store) Send(_ context.Context, sender, recipient, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyContent
	}

	key := ConversationKey(sender, recipient)
	log, err := s.loadLog(key)
	if err != nil {
		return nil, err
	}

	now := s.now().UnixMilli()
	msg := Message{
		ID:        strconv.FormatInt(now, 10),
		Sender:    sender,
		Content:   text,
		Timestamp: now,
	}
	log = append(log, msg)

	if err := s.setJSON(key, log); err != nil {
		return nil, err
	}
	if err := s.db.Set(key+transcriptSuffix, []byte(RenderTranscript(log))); err != nil {
		return nil, err
	}

	s.publish(EventMessageSent, msg)
	return &msg, nil
}

// MarkRead overwrites viewer's read marker for counterpart with the current
// time. Called on every conversation open, not only the first.
func (s *Store) MarkRead(_ context.Context, viewer, counterpart string) error {
	ms := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.db.Set(lastReadKey(viewer, counterpart), []byte(ms)); err != nil {
		return err
	}
	s.publish(EventMessageRead, viewer+" <- "+counterpart)
	return nil
}

// UnreadCount derives the unread total from the pair's log and viewer's read
// marker: messages with a timestamp strictly greater than the marker whose
// sender is not the viewer. A missing marker counts from the beginning of
// time. Nothing is stored; the count is recomputed on each call.
func (s *Store) UnreadCount(ctx context.Context, viewer, counterpart string) (int, error) {
	lastRead, err := s.readMarker(viewer, counterpart)
	if err != nil {
		return 0, err
	}

	log, err := s.Messages(ctx, viewer, counterpart)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range log {
		if m.Timestamp > lastRead && m.Sender != viewer {
			count++
		}
	}
	return count, nil
}

func (s *Store) readMarker(viewer, counterpart string) (int64, error) {
	raw, err := s.db.Get(lastReadKey(viewer, counterpart))
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode read marker: %w", err)
	}
	return ms, nil
}

// Transcript returns the plain-text mirror of the pair's log, one
// "[time] sender: content" line per message.
func (s *Store) Transcript(_ context.Context, userA, userB string) (string, error) {
	raw, err := s.db.Get(ConversationKey(userA, userB) + transcriptSuffix)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// RenderTranscript formats a log the way the persisted mirror does. The hosted
// client uses it to render the same text from a fetched log.
func RenderTranscript(log []Message) string {
	lines := make([]string, len(log))
	for i, m := range log {
		at := time.UnixMilli(m.Timestamp).Format(transcriptTimeLayout)
		lines[i] = fmt.Sprintf("[%s] %s: %s", at, m.Sender, m.Content)
	}
	return strings.Join(lines, "\n")
}
