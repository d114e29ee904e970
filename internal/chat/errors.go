package chat

import "errors"

// Domain errors. Every operation surfaces one of these so UIs can flash a
// message and leave prior state unchanged; none are fatal.
var (
	// ErrValidation means a required field was empty after trimming.
	ErrValidation = errors.New("username and password are required")

	// ErrPasswordMismatch means password and confirmation differ on register.
	ErrPasswordMismatch = errors.New("passwords don't match")

	// ErrDuplicateUsername means a credential record already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials means the username is unknown or the secret
	// does not match. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSelfReference means a user tried to add themselves as a contact.
	ErrSelfReference = errors.New("you can't add yourself")

	// ErrUnknownUser means no credential record exists for the candidate.
	ErrUnknownUser = errors.New("user not found")

	// ErrAlreadyContact means the directed contact edge already exists.
	ErrAlreadyContact = errors.New("already a contact")

	// ErrEmptyContent means the message text was blank after trimming.
	ErrEmptyContent = errors.New("message is empty")

	// ErrBackendUnavailable wraps transport or query failures in the
	// hosted variant. Prior state is left unchanged; there are no retries.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
