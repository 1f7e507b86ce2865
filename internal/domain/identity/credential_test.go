package identity_test

import (
	"testing"

	"campusevents/internal/domain/identity"
)

// TestNewAdminCredential tests construction and verification.
func TestNewAdminCredential(t *testing.T) {
	cred, err := identity.NewAdminCredential("admin@campus.edu", "open sesame now")
	if err != nil {
		t.Fatalf("NewAdminCredential() error = %v", err)
	}
	if cred.PasswordHash == "open sesame now" {
		t.Fatal("credential stored the plaintext password")
	}

	if !cred.Verify("admin@campus.edu", "open sesame now") {
		t.Error("Verify() with correct credentials = false")
	}
	if cred.Verify("admin@campus.edu", "wrong") {
		t.Error("Verify() with wrong password = true")
	}
	if cred.Verify("other@campus.edu", "open sesame now") {
		t.Error("Verify() with wrong email = true")
	}
}

// TestNewAdminCredentialEmpty tests that empty inputs are rejected.
func TestNewAdminCredentialEmpty(t *testing.T) {
	if _, err := identity.NewAdminCredential("", "pw"); err != identity.ErrEmptyEmail {
		t.Errorf("empty email error = %v, want ErrEmptyEmail", err)
	}
	if _, err := identity.NewAdminCredential("a@b.c", ""); err != identity.ErrEmptyPassword {
		t.Errorf("empty password error = %v, want ErrEmptyPassword", err)
	}
}

// TestZeroCredentialNeverVerifies tests the unconfigured credential.
func TestZeroCredentialNeverVerifies(t *testing.T) {
	var cred identity.AdminCredential
	if cred.Verify("", "") {
		t.Error("zero credential verified empty input")
	}
}
