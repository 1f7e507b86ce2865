package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"campusevents/internal/domain/identity"
	"campusevents/internal/domain/student"
)

// StudentStoreForLogin defines the store interface needed by Login.
type StudentStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (student.Student, error)
}

// CredentialVerifier abstracts verification of the configured admin credential.
type CredentialVerifier interface {
	Verify(email, plaintext string) bool
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Role      string // identity.RoleAdmin or identity.RoleStudent
	StudentID string // empty for the admin
	Email     string
	Name      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	StudentStore StudentStoreForLogin
	Admin        CredentialVerifier
}

// ErrInvalidCredentials covers unknown email and wrong password alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin validates credentials and returns identity info for session creation.
// The admin credential is checked first, then the student store.
// PRE: deps.Admin is configured
// POST: Returns role and identity on success; no state is mutated
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	if deps.Admin.Verify(input.Email, input.Password) {
		slog.Info("auth_event", "event", "login_success", "role", identity.RoleAdmin)
		return LoginResult{Role: identity.RoleAdmin, Email: input.Email}, nil
	}

	s, err := deps.StudentStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := s.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "role", identity.RoleStudent, "student_id", s.ID)
	return LoginResult{
		Role:      identity.RoleStudent,
		StudentID: s.ID,
		Email:     s.Email,
		Name:      s.Name,
	}, nil
}
