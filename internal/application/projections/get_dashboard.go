package projections

import (
	"context"

	studentStorage "campusevents/internal/adapters/storage/student"
	"campusevents/internal/domain/registration"
)

// DashboardEventStore extends the event store with the count needed here.
type DashboardEventStore interface {
	EventStore
	Count(ctx context.Context) (int, error)
}

// RegistrationRow carries one registration expanded with the student and
// event it points at, for the admin review table.
type RegistrationRow struct {
	ID           string
	Status       string
	StudentName  string
	StudentEmail string
	Section      string
	EventTitle   string
	EventDate    string // already formatted for display
}

// DashboardResult carries the admin dashboard overview numbers.
type DashboardResult struct {
	StudentCount      int
	EventCount        int
	RegistrationCount int
	PendingCount      int
	ApprovedCount     int
	RejectedCount     int
}

// GetDashboardDeps holds dependencies for the dashboard projections.
type GetDashboardDeps struct {
	StudentStore      StudentStore
	EventStore        DashboardEventStore
	RegistrationStore RegistrationStore
}

// QueryGetDashboard computes the admin overview counters.
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	result := DashboardResult{}

	students, err := deps.StudentStore.Count(ctx, studentStorage.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	result.StudentCount = students

	events, err := deps.EventStore.Count(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	result.EventCount = events

	regs, err := deps.RegistrationStore.List(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	result.RegistrationCount = len(regs)
	for _, r := range regs {
		switch r.Status {
		case registration.StatusPending:
			result.PendingCount++
		case registration.StatusApproved:
			result.ApprovedCount++
		case registration.StatusRejected:
			result.RejectedCount++
		}
	}

	return result, nil
}

// QueryGetRegistrationRows expands every registration with its student and
// event for the admin review table. Rows whose student or event no longer
// resolves are skipped, mirroring the section breakdown behaviour.
func QueryGetRegistrationRows(ctx context.Context, deps GetDashboardDeps) ([]RegistrationRow, error) {
	regs, err := deps.RegistrationStore.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]RegistrationRow, 0, len(regs))
	for _, r := range regs {
		s, err := deps.StudentStore.GetByID(ctx, r.StudentID)
		if err != nil {
			continue
		}
		e, err := deps.EventStore.GetByID(ctx, r.EventID)
		if err != nil {
			continue
		}
		rows = append(rows, RegistrationRow{
			ID:           r.ID,
			Status:       r.Status,
			StudentName:  s.Name,
			StudentEmail: s.Email,
			Section:      s.Section,
			EventTitle:   e.Title,
			EventDate:    e.Date.Format("2 Jan 2006 15:04"),
		})
	}

	return rows, nil
}
