package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	emailAdapter "campusevents/internal/adapters/email"
	"campusevents/internal/domain/registration"
	"campusevents/internal/domain/student"
)

// Decision values for DecideRegistration.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// StudentLookup defines the read-only student access needed for notifications.
type StudentLookup interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
}

// DecideRegistrationInput carries input for the orchestrator.
type DecideRegistrationInput struct {
	RegistrationID string
	Decision       string // DecisionApprove or DecisionReject
}

// DecideRegistrationDeps holds dependencies for DecideRegistration.
type DecideRegistrationDeps struct {
	RegistrationStore RegistrationStore
	StudentStore      StudentLookup
	EventStore        EventLookup
	EmailSender       emailAdapter.Sender // nil disables notifications
}

// ExecuteDecideRegistration applies an admin approve/reject decision.
// The decision is unconditional once the registration exists: re-deciding
// an already-decided registration silently overwrites the status, and
// repeating the same decision is a no-op state-wise. Nothing moves back
// to pending.
// PRE: Decision is DecisionApprove or DecisionReject
// POST: Status persisted; a best-effort notification email is sent and
// its failure never fails the decision
func ExecuteDecideRegistration(ctx context.Context, input DecideRegistrationInput, deps DecideRegistrationDeps) error {
	r, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return asNotFound(err, ErrRegistrationNotFound)
	}

	switch input.Decision {
	case DecisionApprove:
		r.Approve()
	case DecisionReject:
		r.Reject()
	default:
		return errors.New("decision must be 'approve' or 'reject'")
	}

	if err := deps.RegistrationStore.Save(ctx, r); err != nil {
		return err
	}

	slog.Info("registration_decided",
		"registration_id", r.ID, "status", r.Status)

	notifyDecision(ctx, deps, r)
	return nil
}

// notifyDecision emails the student about the decision. Failures are logged
// and swallowed; the decision itself has already been persisted.
func notifyDecision(ctx context.Context, deps DecideRegistrationDeps, r registration.Registration) {
	if deps.EmailSender == nil {
		return
	}

	s, err := deps.StudentStore.GetByID(ctx, r.StudentID)
	if err != nil {
		slog.Warn("decision_notify_skipped", "registration_id", r.ID, "reason", "student_missing")
		return
	}
	e, err := deps.EventStore.GetByID(ctx, r.EventID)
	if err != nil {
		slog.Warn("decision_notify_skipped", "registration_id", r.ID, "reason", "event_missing")
		return
	}

	subject := fmt.Sprintf("Your registration for %s was %s", e.Title, r.Status)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your registration for <strong>%s</strong> on %s has been <strong>%s</strong>.</p>",
		s.Name, e.Title, e.Date.Format("2 January 2006"), r.Status,
	)

	err = deps.EmailSender.Send(ctx, emailAdapter.Message{
		To:      s.Email,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		slog.Warn("decision_notify_failed", "registration_id", r.ID, "error", err)
	}
}
