package api

// RegisterRequest is the body of POST /v1/register.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=1,max=64"`
	Password        string `json:"password" validate:"required,min=1,max=128"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// LoginRequest is the body of POST /v1/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// ContactResponse is one entry in the contact list.
type ContactResponse struct {
	Username string `json:"username"`
	Unread   int    `json:"unread"`
}

// AddContactRequest is the body of POST /v1/contacts.
type AddContactRequest struct {
	Username string `json:"username" validate:"required"`
}

// MessageResponse is one entry in a conversation log.
type MessageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// SendRequest is the body of POST /v1/messages/{username}.
type SendRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// UnreadResponse is returned by GET /v1/messages/{username}/unread.
type UnreadResponse struct {
	Unread int `json:"unread"`
}
