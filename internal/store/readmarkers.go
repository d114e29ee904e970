package store

import (
	"database/sql"
	"time"
)

// SetReadMarker upserts viewer's read marker for counterpart with the current
// time. Called on every conversation open.
func (db *DB) SetReadMarker(viewerID, counterpartID string) error {
	_, err := db.Exec(`
		INSERT INTO read_markers (viewer_id, counterpart_id, last_read_at)
		VALUES (?, ?, ?)
		ON CONFLICT(viewer_id, counterpart_id) DO UPDATE SET
			last_read_at = excluded.last_read_at`,
		viewerID, counterpartID, time.Now().UnixMilli())
	return err
}

// ReadMarker returns viewer's marker for counterpart, or 0 when none exists.
func (db *DB) ReadMarker(viewerID, counterpartID string) (int64, error) {
	var ms int64
	err := db.QueryRow(`
		SELECT last_read_at FROM read_markers
		WHERE viewer_id = ? AND counterpart_id = ?`, viewerID, counterpartID).Scan(&ms)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return ms, nil
}

// UnreadCount counts messages from counterpart to viewer created strictly
// after viewer's read marker. Messages the viewer sent never count.
func (db *DB) UnreadCount(viewerID, counterpartID string) (int, error) {
	marker, err := db.ReadMarker(viewerID, counterpartID)
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM messages
		WHERE sender_id = ? AND recipient_id = ? AND created_at > ?`,
		counterpartID, viewerID, marker).Scan(&n)
	return n, err
}
