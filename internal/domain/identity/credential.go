package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Role constants.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Domain errors
var (
	ErrEmptyEmail    = errors.New("admin email cannot be empty")
	ErrEmptyPassword = errors.New("admin password cannot be empty")
)

// AdminCredential is the administrator credential, configured from the
// environment at startup and held as a bcrypt hash. There is no admin
// record in the data store.
type AdminCredential struct {
	Email        string
	PasswordHash string
}

// NewAdminCredential hashes the configured admin password.
// PRE: email and plaintext are non-empty
// POST: returns a credential holding a bcrypt hash, never the plaintext
func NewAdminCredential(email, plaintext string) (AdminCredential, error) {
	if email == "" {
		return AdminCredential{}, ErrEmptyEmail
	}
	if plaintext == "" {
		return AdminCredential{}, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return AdminCredential{}, err
	}
	return AdminCredential{Email: email, PasswordHash: string(hash)}, nil
}

// Verify checks an email/password pair against the admin credential.
// INVARIANT: AdminCredential fields are not mutated
func (c AdminCredential) Verify(email, plaintext string) bool {
	if email != c.Email || c.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plaintext)) == nil
}
