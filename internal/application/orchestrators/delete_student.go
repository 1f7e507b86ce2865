package orchestrators

import (
	"context"
	"log/slog"

	"campusevents/internal/domain/student"
)

// StudentStoreForDelete defines the student operations needed by DeleteStudent.
type StudentStoreForDelete interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
	Delete(ctx context.Context, id string) error
}

// DeleteStudentDeps holds dependencies for DeleteStudent.
type DeleteStudentDeps struct {
	StudentStore      StudentStoreForDelete
	RegistrationStore RegistrationCascadeStore
}

// ExecuteDeleteStudent removes a student and every registration referencing them.
// Referential integrity is maintained by this cascade, not by the store.
// PRE: studentID is non-empty
// POST: Student and their registrations are gone
func ExecuteDeleteStudent(ctx context.Context, deps DeleteStudentDeps, studentID string) error {
	if _, err := deps.StudentStore.GetByID(ctx, studentID); err != nil {
		return asNotFound(err, ErrStudentNotFound)
	}

	if err := deps.RegistrationStore.DeleteByStudentID(ctx, studentID); err != nil {
		return err
	}
	if err := deps.StudentStore.Delete(ctx, studentID); err != nil {
		return err
	}

	slog.Info("student_deleted", "student_id", studentID)
	return nil
}
