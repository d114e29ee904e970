package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// CreateProfile inserts a new profile and returns it. The username must not
// exist; the unique constraint backs up the caller's pre-check.
func (db *DB) CreateProfile(username, passwordHash string) (*Profile, error) {
	p := &Profile{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UnixMilli(),
	}
	_, err := db.Exec(`
		INSERT INTO profiles (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		p.ID, p.Username, p.PasswordHash, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfileByUsername resolves a username to its profile, or nil if unknown.
func (db *DB) GetProfileByUsername(username string) (*Profile, error) {
	var p Profile
	err := db.QueryRow(`
		SELECT id, username, password_hash, created_at
		FROM profiles WHERE username = ?`, username).
		Scan(&p.ID, &p.Username, &p.PasswordHash, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfileByID returns a profile by id, or nil if unknown.
func (db *DB) GetProfileByID(id string) (*Profile, error) {
	var p Profile
	err := db.QueryRow(`
		SELECT id, username, password_hash, created_at
		FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Username, &p.PasswordHash, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileCount returns the total number of registered profiles.
func (db *DB) ProfileCount() (int64, error) {
	var count int64
	err := db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&count)
	return count, err
}

// MessageCount returns the total number of stored messages.
func (db *DB) MessageCount() (int64, error) {
	var count int64
	err := db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count)
	return count, err
}
