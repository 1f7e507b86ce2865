package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"campusevents/internal/domain/student"
)

// StudentStore defines the interface for student persistence.
type StudentStore interface {
	Save(ctx context.Context, s student.Student) error
	GetByID(ctx context.Context, id string) (student.Student, error)
	GetByEmail(ctx context.Context, email string) (student.Student, error)
}

// ErrEmailTaken indicates a signup or edit collides with an existing email.
var ErrEmailTaken = errors.New("a student with this email already exists")

// SignupStudentInput carries input for the orchestrator.
type SignupStudentInput struct {
	Name     string
	Email    string
	Password string
	Section  string // optional; defaulted when empty
}

// SignupStudentDeps holds dependencies for SignupStudent.
type SignupStudentDeps struct {
	StudentStore StudentStore
	GenerateID   func() string
}

// ExecuteSignupStudent coordinates student account creation.
// PRE: Non-empty name, email, and password
// POST: Student created with a hashed password; explicit section stored as
// given, the default section applied only when none was supplied
// INVARIANT: Email is unique across students
func ExecuteSignupStudent(ctx context.Context, input SignupStudentInput, deps SignupStudentDeps) (string, error) {
	if input.Name == "" {
		return "", errors.New("name cannot be empty")
	}
	if input.Email == "" {
		return "", errors.New("email cannot be empty")
	}
	if input.Password == "" {
		return "", errors.New("password cannot be empty")
	}

	section := input.Section
	if section == "" {
		section = student.DefaultSection
	}

	// Duplicate email is a distinct conflict outcome.
	if _, err := deps.StudentStore.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrEmailTaken
	}

	s := student.Student{
		ID:      deps.GenerateID(),
		Name:    input.Name,
		Email:   input.Email,
		Section: section,
	}
	if err := s.SetPassword(input.Password); err != nil {
		return "", err
	}
	if err := s.Validate(); err != nil {
		return "", err
	}

	if err := deps.StudentStore.Save(ctx, s); err != nil {
		return "", err
	}

	slog.Info("student_signup", "student_id", s.ID, "section", s.Section)
	return s.ID, nil
}
