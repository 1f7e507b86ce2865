package student

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// Section codes identify a student's cohort.
const (
	SectionEV1 = "EV-1"
	SectionEV2 = "EV-2"
	SectionEV3 = "EV-3"
	SectionEV4 = "EV-4"
	SectionEV5 = "EV-5"
)

// DefaultSection is applied at signup when no section is supplied.
const DefaultSection = SectionEV1

// ValidSections contains all valid section codes.
var ValidSections = []string{SectionEV1, SectionEV2, SectionEV3, SectionEV4, SectionEV5}

// Domain errors
var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWrongPassword = errors.New("incorrect password")
)

// Student holds state for the Student concept.
type Student struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Section      string
}

// Validate checks if the Student has valid data.
// PRE: Student struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("student name cannot be empty")
	}
	if len(s.Name) > MaxNameLength {
		return errors.New("student name cannot exceed 100 characters")
	}
	if strings.TrimSpace(s.Email) == "" {
		return errors.New("student email cannot be empty")
	}
	if len(s.Email) > MaxEmailLength {
		return errors.New("student email cannot exceed 254 characters")
	}
	if !strings.Contains(s.Email, "@") {
		return errors.New("student email must be valid")
	}
	if !IsValidSection(s.Section) {
		return errors.New("section must be one of: EV-1, EV-2, EV-3, EV-4, EV-5")
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (s *Student) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Student fields are not mutated
func (s *Student) CheckPassword(plaintext string) error {
	if s.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsValidSection returns true if the given code is a known section.
func IsValidSection(section string) bool {
	for _, s := range ValidSections {
		if section == s {
			return true
		}
	}
	return false
}
