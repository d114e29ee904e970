package store

// Profile is a registered user on the hosted backend.
type Profile struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    int64
}

// Message is a stored direct message. SenderName is populated from the
// profiles join on reads; it is not a column.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Content     string
	CreatedAt   int64
	SenderName  string
}
