package store

import "time"

// AddContact inserts the directed edge owner -> contact. The caller is
// responsible for self-reference and existence checks; the primary key backs
// up the duplicate check.
func (db *DB) AddContact(ownerID, contactID string) error {
	_, err := db.Exec(`
		INSERT INTO contacts (owner_id, contact_id, created_at)
		VALUES (?, ?, ?)`,
		ownerID, contactID, time.Now().UnixMilli())
	return err
}

// HasContact reports whether the directed edge owner -> contact exists.
func (db *DB) HasContact(ownerID, contactID string) (bool, error) {
	var n int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM contacts
		WHERE owner_id = ? AND contact_id = ?`, ownerID, contactID).Scan(&n)
	return n > 0, err
}

// ListContacts returns owner's contacts in insertion order.
func (db *DB) ListContacts(ownerID string) ([]Profile, error) {
	rows, err := db.Query(`
		SELECT p.id, p.username, p.password_hash, p.created_at
		FROM contacts c
		JOIN profiles p ON p.id = c.contact_id
		WHERE c.owner_id = ?
		ORDER BY c.created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, p)
	}
	return contacts, rows.Err()
}
