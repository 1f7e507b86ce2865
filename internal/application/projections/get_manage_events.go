package projections

import (
	"context"
	"time"

	"campusevents/internal/domain/event"
	"campusevents/internal/domain/registration"
	"campusevents/internal/domain/student"
)

// EventSummary carries one event with its registration statistics.
type EventSummary struct {
	Event         event.Event
	IsCompleted   bool
	Total         int            // registrations in any status
	ApprovedCount int
	RejectedCount int
	SectionCounts map[string]int // approved registrations per student section
}

// GetManageEventsDeps holds dependencies for the manage-events projection.
type GetManageEventsDeps struct {
	EventStore        EventStore
	RegistrationStore RegistrationStore
	StudentStore      StudentStore
}

// QueryGetManageEvents builds the admin event overview: every event in
// ascending date order with registration counts broken down by status
// and, for approved registrations, by the student's section.
// A registration whose student no longer resolves still counts toward
// the totals but is skipped for the section breakdown.
// POST: Every event appears exactly once, even with zero registrations
func QueryGetManageEvents(ctx context.Context, deps GetManageEventsDeps, now time.Time) ([]EventSummary, error) {
	events, err := deps.EventStore.ListByDate(ctx)
	if err != nil {
		return nil, err
	}

	regs, err := deps.RegistrationStore.List(ctx)
	if err != nil {
		return nil, err
	}
	regsByEvent := make(map[string][]registration.Registration)
	for _, r := range regs {
		regsByEvent[r.EventID] = append(regsByEvent[r.EventID], r)
	}

	// Student sections resolved once per student, not per registration.
	sections := make(map[string]string)
	summaries := make([]EventSummary, 0, len(events))
	for _, e := range events {
		summary := EventSummary{
			Event:         e,
			IsCompleted:   e.IsCompleted(now),
			SectionCounts: make(map[string]int),
		}
		for _, r := range regsByEvent[e.ID] {
			summary.Total++
			switch r.Status {
			case registration.StatusApproved:
				summary.ApprovedCount++
				if section, ok := resolveSection(ctx, deps.StudentStore, sections, r.StudentID); ok {
					summary.SectionCounts[section]++
				}
			case registration.StatusRejected:
				summary.RejectedCount++
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func resolveSection(ctx context.Context, store StudentStore, cache map[string]string, studentID string) (string, bool) {
	if section, ok := cache[studentID]; ok {
		return section, section != ""
	}
	s, err := store.GetByID(ctx, studentID)
	if err != nil {
		cache[studentID] = ""
		return "", false
	}
	section := s.Section
	if section == "" {
		section = student.DefaultSection
	}
	cache[studentID] = section
	return section, true
}
