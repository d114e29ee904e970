package store

import (
	"time"

	"github.com/google/uuid"
)

// InsertMessage appends a message from sender to recipient and returns the
// stored row.
func (db *DB) InsertMessage(senderID, recipientID, content string) (*Message, error) {
	m := &Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now().UnixMilli(),
	}
	_, err := db.Exec(`
		INSERT INTO messages (id, sender_id, recipient_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.SenderID, m.RecipientID, m.Content, m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// PairMessages returns every message between the two profiles, oldest first.
// The filter is the OR-combined pair condition: (a->b) or (b->a).
func (db *DB) PairMessages(aID, bID string) ([]Message, error) {
	rows, err := db.Query(`
		SELECT m.id, m.sender_id, m.recipient_id, m.content, m.created_at, p.username
		FROM messages m
		JOIN profiles p ON p.id = m.sender_id
		WHERE (m.sender_id = ? AND m.recipient_id = ?)
		   OR (m.sender_id = ? AND m.recipient_id = ?)
		ORDER BY m.created_at ASC`, aID, bID, bID, aID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt, &m.SenderName); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
