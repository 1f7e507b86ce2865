package registration

import (
	"errors"
)

// Status constants. A registration starts pending; approve and reject are
// admin decisions. A decided registration may be re-decided either way, but
// nothing moves back to pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusRejected}

// Registration joins a Student to an Event with an approval status.
// INVARIANT: at most one Registration exists per (student, event) pair.
type Registration struct {
	ID        string
	StudentID string
	EventID   string
	Status    string
}

// Validate checks the registration's invariants.
// PRE: Registration struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Registration) Validate() error {
	if r.StudentID == "" {
		return errors.New("student id is required")
	}
	if r.EventID == "" {
		return errors.New("event id is required")
	}
	if !IsValidStatus(r.Status) {
		return errors.New("status must be 'pending', 'approved', or 'rejected'")
	}
	return nil
}

// Approve marks the registration approved. Idempotent.
// POST: Status is approved
func (r *Registration) Approve() {
	r.Status = StatusApproved
}

// Reject marks the registration rejected. Idempotent.
// POST: Status is rejected
func (r *Registration) Reject() {
	r.Status = StatusRejected
}

// IsPending returns true if no decision has been made yet.
// INVARIANT: Registration fields are not mutated
func (r *Registration) IsPending() bool {
	return r.Status == StatusPending
}

// IsApproved returns true if the registration has been approved.
// INVARIANT: Registration fields are not mutated
func (r *Registration) IsApproved() bool {
	return r.Status == StatusApproved
}

// IsValidStatus returns true if the given value is a known status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if status == s {
			return true
		}
	}
	return false
}
