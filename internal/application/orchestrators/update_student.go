package orchestrators

import (
	"context"
)

// UpdateStudentInput carries input for the admin student edit.
type UpdateStudentInput struct {
	StudentID string
	Name      string
	Email     string
	Password  string // empty keeps the existing password
	Section   string
}

// UpdateStudentDeps holds dependencies for UpdateStudent.
type UpdateStudentDeps struct {
	StudentStore StudentStore
}

// ExecuteUpdateStudent edits a student record on behalf of the admin.
// PRE: StudentID references an existing student
// POST: Student updated; password re-hashed only when a new one was supplied
// INVARIANT: Email stays unique across students
func ExecuteUpdateStudent(ctx context.Context, input UpdateStudentInput, deps UpdateStudentDeps) error {
	s, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		return asNotFound(err, ErrStudentNotFound)
	}

	if input.Email != s.Email {
		if _, err := deps.StudentStore.GetByEmail(ctx, input.Email); err == nil {
			return ErrEmailTaken
		}
	}

	s.Name = input.Name
	s.Email = input.Email
	s.Section = input.Section
	if input.Password != "" {
		if err := s.SetPassword(input.Password); err != nil {
			return err
		}
	}
	if err := s.Validate(); err != nil {
		return err
	}

	return deps.StudentStore.Save(ctx, s)
}
