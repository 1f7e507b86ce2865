package event

import (
	"errors"
	"time"
)

// Category constants.
const (
	CategorySports    = "Sports"
	CategoryTechnical = "Technical"
	CategoryCultural  = "Cultural"
	CategoryOther     = "Other"
)

// DefaultCategory is applied when no category is supplied.
const DefaultCategory = CategoryOther

// Max length constants for user-editable fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxLocationLength    = 200
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{CategorySports, CategoryTechnical, CategoryCultural, CategoryOther}

// Domain errors
var (
	ErrDateInPast = errors.New("event date cannot be in the past")
)

// Event represents a campus event students can register for.
// INVARIANT: Date is never set to a past instant on create or update.
type Event struct {
	ID          string
	Title       string
	Description string // markdown, rendered safely in views
	Date        time.Time
	Location    string
	Capacity    int
	Poster      string // stored upload filename, empty if none
	Category    string
	CreatedAt   time.Time
}

// Validate checks the event's invariants.
// PRE: Event struct is populated
// POST: Returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if e.Title == "" {
		return errors.New("event title cannot be empty")
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 2000 characters")
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("event location cannot exceed 200 characters")
	}
	if e.Date.IsZero() {
		return errors.New("event date is required")
	}
	if e.Capacity < 0 {
		return errors.New("event capacity cannot be negative")
	}
	if !IsValidCategory(e.Category) {
		return errors.New("category must be one of: Sports, Technical, Cultural, Other")
	}
	return nil
}

// DateValid reports whether date may be used for an event write at instant now.
// A date exactly equal to now is accepted; only strictly past dates fail.
func DateValid(date, now time.Time) bool {
	return !date.Before(now)
}

// RegistrationOpen reports whether new registrations are accepted at instant now.
// Closed once the event date has passed.
// INVARIANT: Event fields are not mutated
func (e *Event) RegistrationOpen(now time.Time) bool {
	return !e.Date.Before(now)
}

// IsCompleted reports whether the event date has passed at instant now.
// INVARIANT: Event fields are not mutated
func (e *Event) IsCompleted(now time.Time) bool {
	return e.Date.Before(now)
}

// IsValidCategory returns true if the given value is a known category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if category == c {
			return true
		}
	}
	return false
}
