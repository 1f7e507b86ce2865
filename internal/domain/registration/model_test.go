package registration_test

import (
	"testing"

	"campusevents/internal/domain/registration"
)

// TestRegistrationValidation tests validation of Registration.
func TestRegistrationValidation(t *testing.T) {
	tests := []struct {
		name    string
		reg     registration.Registration
		wantErr bool
	}{
		{
			name:    "valid pending registration",
			reg:     registration.Registration{ID: "1", StudentID: "s1", EventID: "e1", Status: registration.StatusPending},
			wantErr: false,
		},
		{
			name:    "valid approved registration",
			reg:     registration.Registration{ID: "1", StudentID: "s1", EventID: "e1", Status: registration.StatusApproved},
			wantErr: false,
		},
		{
			name:    "missing student id",
			reg:     registration.Registration{ID: "1", EventID: "e1", Status: registration.StatusPending},
			wantErr: true,
		},
		{
			name:    "missing event id",
			reg:     registration.Registration{ID: "1", StudentID: "s1", Status: registration.StatusPending},
			wantErr: true,
		},
		{
			name:    "unknown status",
			reg:     registration.Registration{ID: "1", StudentID: "s1", EventID: "e1", Status: "waitlisted"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Registration.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestRegistrationDecisions tests the approve/reject transitions.
func TestRegistrationDecisions(t *testing.T) {
	r := registration.Registration{ID: "1", StudentID: "s1", EventID: "e1", Status: registration.StatusPending}

	if !r.IsPending() {
		t.Fatal("new registration should be pending")
	}

	r.Approve()
	if !r.IsApproved() {
		t.Errorf("after Approve() status = %q, want approved", r.Status)
	}

	// Approving again is a no-op state-wise.
	r.Approve()
	if !r.IsApproved() {
		t.Errorf("Approve() is not idempotent, status = %q", r.Status)
	}

	// A decided registration may be re-decided the other way; it never
	// returns to pending.
	r.Reject()
	if r.Status != registration.StatusRejected {
		t.Errorf("after Reject() status = %q, want rejected", r.Status)
	}
	if r.IsPending() {
		t.Error("decided registration reports pending")
	}
}
